package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/database"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/logger"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/repository"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, nil)
	userService := service.NewUserService(userRepo, authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Teacher Account ===")

	// First Name
	fmt.Print("Enter First Name: ")
	firstName, _ := reader.ReadString('\n')
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		fmt.Println("Error: First name is required")
		return
	}

	// Last Name
	fmt.Print("Enter Last Name: ")
	lastName, _ := reader.ReadString('\n')
	lastName = strings.TrimSpace(lastName)

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Department
	fmt.Print("Enter Department: ")
	department, _ := reader.ReadString('\n')
	department = strings.TrimSpace(department)

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := userService.Register(ctx, &model.RegisterRequest{
		Email:      email,
		Password:   password,
		FirstName:  firstName,
		LastName:   lastName,
		Role:       model.RoleTeacher,
		Department: department,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			fmt.Println("Error: An account with that email already exists")
			return
		}
		log.Fatal().Err(err).Msg("Failed to create teacher")
	}

	fmt.Printf("\nSuccess! Teacher '%s %s' (%s) created with ID: %d\n", user.FirstName, user.LastName, user.Email, user.ID)
}
