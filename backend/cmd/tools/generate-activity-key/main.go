package main

import (
	"fmt"
	"log"

	"github.com/admissible-dev/admissible-demo/shared/crypto"
)

func main() {
	key, err := crypto.GenerateKey()
	if err != nil {
		log.Fatalf("Failed to generate activity key: %v", err)
	}

	fmt.Println("Activity subject key (base64, BLAKE2b-256):")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Add this to your config/private.yaml:")
	fmt.Printf("activity_key: \"%s\"\n", key)
	fmt.Println()
	fmt.Println("or export ADMISSIBLE_ACTIVITY_KEY. Changing the key detaches")
	fmt.Println("existing activity from its users.")
}
