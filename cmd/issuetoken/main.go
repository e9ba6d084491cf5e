// issuetoken 为本地调试签发调用方令牌
//
//	go run ./cmd/issuetoken alice
//	go run ./cmd/issuetoken -hex 9f2c...
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/auth"
)

func main() {
	asHex := flag.Bool("hex", false, "treat the argument as a 64-char hex address")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: issuetoken [-hex] <name|address>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	who := address.Derive("user", []byte(flag.Arg(0)))
	if *asHex {
		if who, err = address.Parse(flag.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	token, err := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Issue(who)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("address: %s\ntoken:   %s\n", who, token)
}
