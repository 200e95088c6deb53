// reset-password reemplaza la contraseña de un usuario existente.
//
// Uso: go run ./cmd/reset-password -username admin -password nuevo-secreto
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/usecase"
	"github.com/jhoicas/bodega/internal/infrastructure/storage"
	"github.com/jhoicas/bodega/pkg/config"
	"github.com/jhoicas/bodega/pkg/logger"
)

func main() {
	username := flag.String("username", "", "usuario a modificar")
	password := flag.String("password", "", "nueva contraseña (mínimo 8 caracteres)")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
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

	err = usecase.NewUserUseCase(repos.Users).ResetPassword(ctx, dto.ResetPasswordRequest{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("cambiar contraseña")
	}
	fmt.Printf("contraseña de %s actualizada\n", *username)
}
