// Command devtoken prints a signed token for local testing of the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/valeryfun/mern-dev-connector/internal/middleware"
)

func main() {
	uid := flag.String("uid", "", "user id (24-char hex ObjectID)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if *uid == "" {
		*uid = bson.NewObjectID().Hex()
		log.Printf("no -uid given, using %s", *uid)
	} else if _, err := bson.ObjectIDFromHex(*uid); err != nil {
		log.Fatalf("invalid -uid %q: %v", *uid, err)
	}

	signed, err := middleware.SignToken(secret, *uid, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(signed)
}
