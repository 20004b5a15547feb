// Command createuser provisions an admin account.
//
//	go run ./cmd/createuser -name "Admin" -email admin@agenda.local -password segredo123
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/BruksfildServices01/agenda-online/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda-online/internal/db"
	infraRepo "github.com/BruksfildServices01/agenda-online/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-online/internal/logging"
	ucAuth "github.com/BruksfildServices01/agenda-online/internal/usecase/auth"
	"github.com/BruksfildServices01/agenda-online/internal/validators"
)

func main() {
	var in ucAuth.CreateUserInput
	flag.StringVar(&in.Name, "name", "", "display name")
	flag.StringVar(&in.Email, "email", "", "login e-mail")
	flag.StringVar(&in.Password, "password", "", "password (min 6 characters)")
	flag.StringVar(&in.Role, "role", "admin", "role")
	checkDomain := flag.Bool("check-domain", false, "resolve the e-mail domain before creating")
	flag.Parse()

	cfg := config.Load()
	log := logging.New("agenda-createuser", cfg.LogLevel)

	if err := run(cfg, in, *checkDomain, log.Info); err != nil {
		log.Error("create user", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, in ucAuth.CreateUserInput, checkDomain bool, info func(string, ...any)) error {
	if checkDomain && !validators.IsEmailDomainValid(in.Email) {
		return errors.New("o domínio do e-mail informado não parece ser válido")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := ucAuth.NewCreateUser(infraRepo.NewUserGormRepository(db)).Execute(ctx, in)
	if err != nil {
		return err
	}

	info("user created", "id", user.ID, "email", user.Email, "role", user.Role)
	return nil
}
