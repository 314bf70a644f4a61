package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pontual.app/pontual/security"
)

func main() {
	id := flag.String("id", "", "subject id")
	name := flag.String("name", "", "display name")
	role := flag.String("role", security.RoleEmployee, "employee or reviewer")
	ttl := flag.Int64("ttl", 3600, "token lifetime in seconds")
	flag.Parse()

	if *id == "" {
		log.Fatal("-id is required")
	}

	secret := os.Getenv("PONTUAL_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("PONTUAL_SIGNING_SECRET is not set")
	}

	token, err := security.CreateSubjectToken(&security.Subject{
		ID:   *id,
		Name: *name,
		Role: *role,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
