package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"isoko/internal/model/category"
	"isoko/internal/pkg/id"
	"isoko/internal/pkg/mongodb"
	"isoko/internal/pkg/slugutil"
	categoryRepo "isoko/internal/repository/category"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default categories",
	Long:  `Create the default document categories. Existing categories are updated in place.`,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// defaultCategories 平台默认分类
var defaultCategories = []category.Category{
	{Name: "Government Documents", Description: "Official government publications, laws, and policies", Icon: "🏛️", Order: 1},
	{Name: "Education", Description: "Educational materials, textbooks, and research papers", Icon: "📚", Order: 2},
	{Name: "Health & Medicine", Description: "Medical documents, health policies, and research", Icon: "🏥", Order: 3},
	{Name: "Agriculture", Description: "Agricultural guides, farming techniques, and research", Icon: "🌾", Order: 4},
	{Name: "Business & Economy", Description: "Business documents, economic reports, and market analysis", Icon: "💼", Order: 5},
	{Name: "Culture & Heritage", Description: "Cultural documents, traditional knowledge, and heritage materials", Icon: "🎭", Order: 6},
	{Name: "History", Description: "Historical documents, archives, and research", Icon: "📜", Order: 7},
	{Name: "Legal Documents", Description: "Legal texts, court decisions, and legal research", Icon: "⚖️", Order: 8},
	{Name: "Science & Technology", Description: "Scientific papers, technical documents, and research", Icon: "🔬", Order: 9},
	{Name: "Environment", Description: "Environmental reports, conservation documents, and research", Icon: "🌍", Order: 10},
	{Name: "Human Rights", Description: "Human rights documents, reports, and advocacy materials", Icon: "✊", Order: 11},
	{Name: "Other", Description: "Miscellaneous documents that don't fit other categories", Icon: "📁", Order: 12},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	client, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	ctx := context.Background()
	repo := categoryRepo.NewCategoryRepo(client.Database())

	created, updated := 0, 0
	for _, c := range defaultCategories {
		slug := slugutil.Make(c.Name)

		existing, err := repo.FindBySlug(ctx, slug)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("failed to query category %q: %w", c.Name, err)
			}

			c.ID = id.New()
			c.Slug = slug
			if err := repo.Create(ctx, &c); err != nil {
				return fmt.Errorf("failed to create category %q: %w", c.Name, err)
			}
			created++
			log.Info().Str("name", c.Name).Msg("created category")
			continue
		}

		update := bson.M{
			"name":        c.Name,
			"description": c.Description,
			"icon":        c.Icon,
			"order":       c.Order,
		}
		if err := repo.Update(ctx, existing.ID, update); err != nil {
			return fmt.Errorf("failed to update category %q: %w", c.Name, err)
		}
		updated++
		log.Info().Str("name", c.Name).Msg("updated category")
	}

	fmt.Printf("Seeding complete. Created: %d, Updated: %d\n", created, updated)
	return nil
}
