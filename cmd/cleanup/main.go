package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/qs3c/quizgen_go_server/config"
	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/repository"
	"github.com/qs3c/quizgen_go_server/internal/store"
)

var (
	dryRun        = flag.Bool("dry-run", true, "Dry run mode, don't actually delete records")
	cleanSessions = flag.Bool("clean-sessions", true, "Clean expired sessions")
	cleanUsage    = flag.Bool("clean-usage", true, "Clean old monthly usage records")
	retainMonths  = flag.Int("retain-months", 0, "Months of usage history to keep (0 = use config)")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data dir: %v", err)
	}

	deletedSessions := 0
	deletedUsage := 0

	// 1. 清理过期会话
	if *cleanSessions {
		log.Println("\n🔑 Cleaning expired sessions...")
		deletedSessions = cleanExpiredSessions(st, *dryRun)
	}

	// 2. 清理过旧的月度用量记录
	if *cleanUsage {
		months := *retainMonths
		if months <= 0 {
			months = cfg.Cleanup.RetainMonths
		}
		log.Printf("\n📈 Cleaning monthly usage older than %d months...", months)
		deletedUsage = cleanOldUsage(st, months, *dryRun)
	}

	// 输出统计
	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("📊 Cleanup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Expired sessions removed: %d", deletedSessions)
	log.Printf("Old usage records removed: %d", deletedUsage)
	if *dryRun {
		log.Println("\n⚠️  DRY RUN MODE - No records were actually deleted")
		log.Println("   Run with -dry-run=false to actually delete records")
	} else {
		log.Println("\n✅ Cleanup completed!")
	}
	log.Println(strings.Repeat("=", 60))
}

// cleanExpiredSessions 清理已过期的会话记录
func cleanExpiredSessions(st *store.Store, dryRun bool) int {
	now := time.Now().UTC()

	if dryRun {
		sessions, err := store.Load[model.Session](st, store.Sessions)
		if err != nil {
			log.Printf("Failed to load sessions: %v", err)
			return 0
		}
		count := 0
		for _, s := range sessions {
			if s.Expires.Before(now) {
				count++
			}
		}
		log.Printf("Found %d expired sessions", count)
		return count
	}

	count, err := repository.NewSessionRepository(st).DeleteExpired(now)
	if err != nil {
		log.Printf("Failed to delete sessions: %v", err)
		return 0
	}
	log.Printf("Deleted %d expired sessions", count)
	return count
}

// cleanOldUsage 清理保留期之外的月度用量记录
func cleanOldUsage(st *store.Store, retainMonths int, dryRun bool) int {
	cutoff := time.Now().UTC().AddDate(0, -retainMonths, 0).Format("2006-01")

	if dryRun {
		records, err := store.Load[model.MonthlyUsage](st, store.MonthlyUsage)
		if err != nil {
			log.Printf("Failed to load monthly usage: %v", err)
			return 0
		}
		count := 0
		for _, r := range records {
			if r.MonthYear < cutoff {
				count++
			}
		}
		log.Printf("Found %d usage records older than %s", count, cutoff)
		return count
	}

	count, err := repository.NewMonthlyUsageRepository(st).DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Failed to delete monthly usage: %v", err)
		return 0
	}
	log.Printf("Deleted %d usage records older than %s", count, cutoff)
	return count
}
