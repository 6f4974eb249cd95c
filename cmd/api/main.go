package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/handler"
	"github.com/dailyshift-dev/shift-notify/backend/internal/mailer"
	"github.com/dailyshift-dev/shift-notify/backend/internal/ranking"
	"github.com/dailyshift-dev/shift-notify/backend/internal/store"
	"github.com/dailyshift-dev/shift-notify/backend/internal/workflow"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}

	/**********************************************
	 * 连接文档库
	 **********************************************/
	var documentStore store.Store

	switch cfg.Store.Driver {
	case "postgres":
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			logger.Error("无法创建数据库连接池", "error", err)
			return
		}
		defer dbpool.Close()

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()

		// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
		if err := dbpool.PingContext(ctx); err != nil {
			logger.Error("无法连接到数据库", "error", err)
			return
		}

		documentStore = store.NewPostgresStore(cfg, dbpool)
	case "firestore":
		client, err := firestore.NewClient(context.Background(), cfg.Firestore.ProjectID)
		if err != nil {
			logger.Error("无法创建 Firestore 客户端", "error", err)
			return
		}
		defer client.Close()

		documentStore = store.NewFirestoreStore(cfg, client)
	default:
		logger.Error("不支持的文档库驱动", "driver", cfg.Store.Driver)
		return
	}

	/**********************************************
	 * 创建排序服务客户端
	 **********************************************/
	ranker, err := ranking.NewGemini(context.Background(), cfg)
	if err != nil {
		logger.Error("无法创建排序服务客户端", "error", err)
		return
	}

	/**********************************************
	 * 创建邮件通道
	 **********************************************/
	var m mailer.Mailer

	switch cfg.Mailer.Driver {
	case "queue":
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			logger.Error("无法连接到 rabbitmq", "error", err)
			return
		}
		defer conn.Close()

		// 建立通道
		ch, err := conn.Channel()
		if err != nil {
			logger.Error("无法建立通道", "error", err)
			return
		}
		defer ch.Close()

		// 声明队列
		_, err = ch.QueueDeclare(
			mailer.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			logger.Error("无法声明队列", "error", err)
			return
		}

		m = mailer.NewQueue(cfg, ch)
	case "smtp":
		client, err := mailer.NewSMTPClient(cfg)
		if err != nil {
			logger.Error("无法创建邮件客户端", "error", err)
			return
		}
		defer client.Close()

		m = mailer.NewSMTP(cfg, client)
	default:
		logger.Error("不支持的邮件驱动", "driver", cfg.Mailer.Driver)
		return
	}

	/**********************************************
	 * 连接 redis（可选，用于触发去重）
	 **********************************************/
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       0,
		})
	}

	/**********************************************
	 * 创建候选人挑选流程和 handler
	 **********************************************/
	selection := workflow.NewSelection(cfg, documentStore, ranker, m, rdb)

	handler, err := handler.NewHandler(cfg, documentStore, selection)
	if err != nil {
		logger.Error("无法创建 handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * 启动 HTTP 服务器
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("正在启动服务器...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("无法启动服务器", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("关闭服务器失败", slog.String("error", err.Error()))
	}
	logger.Info("服务器已成功关闭")
}
