// Command keygen generates an ECDSA P-521 signing key and writes it as a PEM
// file for the server's -k flag / IDM_SIGNING_KEY_FILE setting.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/filmstack/idm/internal/server/token"
)

func main() {
	out := flag.String("o", "signing_key.pem", "output file for the PEM-encoded key")
	flag.Parse()

	key, err := token.GeneratePrivateKey()
	if err != nil {
		log.Fatalf("%v", err)
	}

	pemBytes, err := token.EncodePrivateKey(key)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := os.WriteFile(*out, pemBytes, 0o600); err != nil {
		log.Fatalf("error writing %s: %v", *out, err)
	}

	log.Printf("wrote signing key to %s", *out)
}
