package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/VitaminP8/linkery/internal/config"
	"github.com/VitaminP8/linkery/internal/link"
	"github.com/VitaminP8/linkery/internal/subscription"
	"github.com/VitaminP8/linkery/internal/user"
	"github.com/VitaminP8/linkery/internal/vote"

	"github.com/VitaminP8/linkery/graph"
	"github.com/VitaminP8/linkery/graph/generated"
	"github.com/VitaminP8/linkery/internal/storage/memory"
	"github.com/VitaminP8/linkery/internal/storage/postgres"
	"github.com/VitaminP8/linkery/models"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	var linkStore link.LinkStorage
	var userStore user.UserStorage
	var voteStore vote.VoteStorage

	switch *storageType {
	case "postgres":
		err := postgres.InitDB()
		if err != nil {
			log.Fatalf("failed to init database: %v", err)
		}
		err = postgres.DB.AutoMigrate(&models.User{}, &models.Link{}, &models.Vote{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		linkStore = postgres.NewLinkPostgresStorage()
		userStore = postgres.NewUserPostgresStorage()
		voteStore = postgres.NewVotePostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		linkStore = memory.NewLinkMemoryStorage()
		userStore = memory.NewUserMemoryStorage()
		voteStore = memory.NewVoteMemoryStorage(linkStore)

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	// Менеджер подписок один на весь процесс
	subscriptionManager := subscription.NewSubscriptionManager()

	// Инициализация резолвера
	resolver := &graph.Resolver{
		LinkStore:           linkStore,
		UserStore:           userStore,
		VoteStore:           voteStore,
		SubscriptionManager: subscriptionManager,
	}

	// Создаем новый сервер GraphQL с резолверами (websocket-транспорт для подписок входит в DefaultServer)
	srv := handler.NewDefaultServer(generated.NewExecutableSchema(generated.Config{
		Resolvers: resolver,
	}))

	// AuthMiddleware - http.Handler, который получает запрос, вытаскивает JWT токен из заголовка, проверяет и валидирует его, сохраняет userID в context
	http.Handle("/query", auth.AuthMiddleware(srv))
	// Страница с тестовым интерфейсом Playground
	http.Handle("/", playground.Handler("GraphQL Playground", "/query"))

	// HTTP сервер
	addr := config.GetEnvOrDefault("SERVER_ADDR", ":8080")
	server := &http.Server{
		Addr: addr,
	}

	// запуск HTTP сервер
	go func() {
		log.Printf("Сервер запущен на http://localhost%s/", addr)
		// строка не возвращается (блокирует поток) пока не выполнится server.Shutdown() или не произойдет фатальная ошибка
		// Поэтому запускаем goroutine
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Println("Завершение...")

	if *storageType == "postgres" {
		postgres.CloseDB()
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	log.Println("Сервер остановлен корректно")
}
