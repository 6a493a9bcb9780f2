package grpc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/dmitrijs2005/pricekeeper/internal/logging"
	"github.com/dmitrijs2005/pricekeeper/internal/server/auth"
	"github.com/dmitrijs2005/pricekeeper/internal/server/models"
	"google.golang.org/grpc/metadata"
)

const testSecret = "secret"

type fakeInserter struct {
	mu    sync.Mutex
	calls []*models.PriceEntry
	owner string
	id    string
	err   error
}

func (f *fakeInserter) Insert(ctx context.Context, ownerID string, entry *models.PriceEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, entry)
	f.owner = ownerID
	if f.err != nil {
		return "", f.err
	}
	if f.id == "" {
		return "row-1", nil
	}
	return f.id, nil
}

func newTestServer(es EntryInserter) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Discard(), es, testSecret, 0, 0)
}

func tokenFor(t *testing.T, owner string) string {
	t.Helper()
	tok, err := auth.GenerateToken(owner, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func incomingWithToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}
