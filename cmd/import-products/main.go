// import-products carga un catálogo de productos desde CSV o XLSX.
//
// Uso: go run ./cmd/import-products [-charset windows-1252] catalogo.xlsx
// Columnas: sku, name, unit (obligatorias), min_order_level, unit_price, quantity, description.
// Los SKU que ya existen se informan y se saltan.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/usecase"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/infrastructure/catalog"
	"github.com/jhoicas/bodega/internal/infrastructure/storage"
	"github.com/jhoicas/bodega/pkg/config"
	"github.com/jhoicas/bodega/pkg/logger"
)

func main() {
	charset := flag.String("charset", "", "solo CSV: utf-8, windows-1252 o latin1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import-products [-charset cs] archivo.csv|archivo.xlsx")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var (
		items   []dto.CreateProductRequest
		rowErrs []catalog.RowError
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		items, rowErrs, err = catalog.ReadXLSX(f)
	case ".csv":
		items, rowErrs, err = catalog.ReadCSV(f, *charset)
	default:
		err = fmt.Errorf("extensión no soportada: %s", filepath.Ext(path))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}
	for _, re := range rowErrs {
		fmt.Fprintf(os.Stderr, "omitida %v\n", re)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer repos.Close()

	products := usecase.NewProductUseCase(repos.Products)
	var created, skipped int
	for _, in := range items {
		_, err := products.Create(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Warn().Str("sku", in.SKU).Msg("SKU ya existe, se omite")
		default:
			skipped++
			log.Error().Err(err).Str("sku", in.SKU).Msg("no se pudo crear el producto")
		}
	}
	fmt.Printf("Importados %d productos, %d omitidos, %d filas inválidas\n", created, skipped, len(rowErrs))
}
