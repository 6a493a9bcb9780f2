// Command token issues an access token for an owner, signed with the
// server's secret key. Server flags (-s, -t, -c, -env) are honoured.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/pricekeeper/internal/flagx"
	"github.com/dmitrijs2005/pricekeeper/internal/server/auth"
	"github.com/dmitrijs2005/pricekeeper/internal/server/config"
)

func main() {

	cfg := config.LoadConfig()

	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	owner := fs.String("o", "", "owner id placed in the token subject")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-o"})); err != nil {
		log.Fatalf("%v", err)
	}
	if *owner == "" {
		log.Fatalf("owner id is required (-o)")
	}

	token, err := auth.GenerateToken(*owner, []byte(cfg.SecretKey), cfg.TokenValidityDuration)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println(token)

}
