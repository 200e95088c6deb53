// create-user crea un usuario desde la línea de comandos.
//
// Uso: go run ./cmd/create-user -username admin -password secreto123 -roles ADMIN,USER
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/usecase"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/infrastructure/storage"
	"github.com/jhoicas/bodega/pkg/config"
	"github.com/jhoicas/bodega/pkg/logger"
)

func main() {
	username := flag.String("username", "", "nombre de usuario")
	password := flag.String("password", "", "contraseña (mínimo 8 caracteres)")
	roles := flag.String("roles", entity.RoleUser, "roles separados por coma (USER, ADMIN)")
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

	user, err := usecase.NewUserUseCase(repos.Users).CreateUser(ctx, dto.CreateUserRequest{
		Username: *username,
		Password: *password,
		Roles:    entity.ParseRoles(*roles),
	})
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("crear usuario")
	}
	fmt.Printf("usuario %s creado (id %s, roles %v)\n", user.Username, user.ID, user.Roles)
}
