// seed_categories carga el árbol inicial de categorías desde un archivo JSON anidado:
//
//	[{"name": "Electronics", "icon_name": "bolt", "children": [{"name": "Phones"}]}]
//
// Uso: go run ./cmd/seed_categories [ruta/categories.json] [charset]
// Por defecto busca categories.json en el directorio actual y asume UTF-8.
// Las categorías cuyo nombre ya existe se dejan como están.
package main

import (
	"context"
	"os"

	appcategory "github.com/zmitacart/catalog-api/internal/application/category"
	"github.com/zmitacart/catalog-api/internal/infrastructure/postgres"
	"github.com/zmitacart/catalog-api/pkg/config"
	"github.com/zmitacart/catalog-api/pkg/logger"
)

func main() {
	path := "categories.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	charset := ""
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed_categories"})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir archivo")
	}
	defer f.Close()

	nodes, err := readSeedFile(f, charset)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("leer archivo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	tree := appcategory.NewTreeManager(
		postgres.NewCategoryRepository(pool), postgres.NewTxRunner(pool), nil, nil, log.Zerolog(),
	)
	res, err := tree.Seed(ctx, nodes)
	if err != nil {
		log.Fatal().Err(err).Int("created", res.Created).Msg("carga de categorías")
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Str("path", path).Msg("carga de categorías completada")
}
