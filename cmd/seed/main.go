package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/donspeedie/CRM/internal/config"
	"github.com/donspeedie/CRM/internal/store"
	"github.com/donspeedie/CRM/pkg/model"
)

// Usage example on the command line:
// > FIREBASE_PROJECT_ID=my-crm go run main.go -user=u1
func main() {
	_ = godotenv.Load()

	userPtr := flag.String("user", "", "the owner id to seed contacts for")
	flag.Parse()
	if *userPtr == "" {
		panic("the -user flag is required")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	ctx := context.Background()
	client, err := store.NewClient(ctx, &cfg.FirestoreConfig)
	if err != nil {
		panic(err)
	}
	contacts := store.NewContactStore(client, cfg.ContactsCollection)

	overdue := time.Now().Add(-48 * time.Hour)
	upcoming := time.Now().Add(7 * 24 * time.Hour)
	initialContacts := []model.CreateContactInput{
		{
			Name:    "Ana Ferreira",
			Email:   "ana@acme.example",
			Phone:   "(555) 123-4567",
			Company: "Acme Corp",
			Role:    "CEO",
			Tags:    []string{model.TagRealDeal},
			Source:  model.SourceLinkedIn,
		},
		{
			Name:         "Bert Novak",
			Email:        "bert@nimble.example",
			Company:      "Nimble Development",
			Tags:         []string{model.TagNimbleDevelopment},
			Source:       model.SourceReferral,
			NextFollowUp: &overdue,
		},
		{
			Name:         "Carla Dvorak",
			Phone:        "+420 333 555 777",
			Tags:         []string{model.TagPersonal},
			Notes:        "met at the conference",
			NextFollowUp: &upcoming,
		},
	}

	// Only add contacts whose name is not present yet, so the seed can be
	// run repeatedly.
	existing, err := contacts.GetAll(ctx, *userPtr)
	if err != nil {
		panic(err)
	}
	names := make(map[string]bool)
	for _, contact := range existing {
		names[contact.Name] = true
	}
	for _, in := range initialContacts {
		if names[in.Name] {
			fmt.Printf("skipping %s, already present\n", in.Name)
			continue
		}
		id, err := contacts.Create(ctx, *userPtr, in)
		if err != nil {
			panic(err)
		}
		fmt.Printf("created %s as %s\n", in.Name, id)
	}
}
