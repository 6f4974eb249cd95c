package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/store"
	"github.com/dailyshift-dev/shift-notify/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// 往文档库里灌 mock 员工数据，方便本地调试候选人挑选流程
// SEED_CREATE_DEMO_SHIFT=true 时额外创建一个示例班次
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

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()

		if err := dbpool.PingContext(ctx); err != nil {
			logger.Error("无法连接到数据库", "error", err)
			return
		}

		pgStore := store.NewPostgresStore(cfg, dbpool)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			logger.Error("无法创建文档表", "error", err)
			return
		}

		documentStore = pgStore
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
	 * 生成并插入 mock 员工
	 **********************************************/
	for i := 0; i < cfg.Seed.EmployeeCount; i++ {
		employee := utils.GenerateRandomEmployee(cfg.Seed.EmailDomain)
		if err := documentStore.CreateEmployee(context.Background(), employee); err != nil {
			logger.Error("无法插入员工", "uuid", employee.Profile.UUID, "error", err)
			return
		}
	}
	logger.Info("员工数据已插入", "count", cfg.Seed.EmployeeCount)

	/**********************************************
	 * 按需创建示例班次
	 **********************************************/
	if cfg.Seed.CreateDemoShift {
		shift := utils.GenerateRandomShift()
		id, err := documentStore.CreateShift(context.Background(), shift)
		if err != nil {
			logger.Error("无法创建示例班次", "error", err)
			return
		}
		// 创建事件不会自动派发，调试时需要自己往触发接口 POST 一条
		logger.Info("示例班次已创建", "shiftID", id, "description", shift.Description)
	}
}
