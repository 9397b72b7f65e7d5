package main

import (
	"flag"
	"log"
	"os"

	"github.com/hugohenrick/gemini-chat/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	databaseURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "URL de conexão com o PostgreSQL")
	flag.Parse()

	if *databaseURL == "" {
		log.Fatal("DATABASE_URL não definida")
	}

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	switch command {
	case "up":
		if err := database.RunMigrations(*databaseURL); err != nil {
			log.Fatalf("Erro ao executar migrações: %v", err)
		}
		log.Println("Migrações executadas com sucesso!")
	case "down":
		if err := database.RollbackMigrations(*databaseURL); err != nil {
			log.Fatalf("Erro ao reverter migrações: %v", err)
		}
		log.Println("Migrações revertidas com sucesso!")
	case "version":
		version, dirty, err := database.MigrationVersion(*databaseURL)
		if err != nil {
			log.Fatalf("Erro ao consultar versão: %v", err)
		}
		log.Printf("Versão atual: %d (dirty=%t)", version, dirty)
	default:
		log.Fatalf("Comando desconhecido %q (use up, down ou version)", command)
	}
}
