package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anoixa/photo-gallery/config"
	"github.com/anoixa/photo-gallery/database/models"
	"github.com/anoixa/photo-gallery/internal/di"
	"github.com/anoixa/photo-gallery/storage"
	"github.com/spf13/cobra"
)

// cleanCmd 清理存储中没有对应记录的孤儿文件
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean orphan storage files",
	Long: `Clean orphan storage files.
This includes:
  - Delete storage files without corresponding photo records, once they are older than --min-age
    (an upload in progress writes its file before the record is committed)
  - Report photo records whose file is missing (records are never deleted)`,
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		minAge, _ := cmd.Flags().GetDuration("min-age")

		if err := runClean(dryRun, minAge); err != nil {
			log.Fatalf("Clean failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().Bool("dry-run", false, "Only show what would be cleaned, don't actually delete")
	cleanCmd.Flags().Duration("min-age", defaultOrphanMinAge, "Only delete orphan files last modified longer ago than this")
}

// defaultOrphanMinAge 孤儿文件的最小存在时间，保护尚未提交记录的上传
const defaultOrphanMinAge = time.Hour

// photoLister 列出全部照片记录
type photoLister interface {
	List(ctx context.Context) ([]*models.Photo, error)
}

// cleanStats 清理统计信息
type cleanStats struct {
	orphanStorageFiles  int // 存储孤儿文件数
	deletedStorageFiles int // 删除的存储文件数
	skippedRecentFiles  int // 未达到最小存在时间而跳过的文件
	missingFiles        int // 记录存在但文件缺失
	errors              []string
}

// runClean 执行清理
func runClean(dryRun bool, minAge time.Duration) error {
	config.InitConfig()
	cfg := config.Get()

	container := di.NewContainer(cfg)
	if err := container.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	stats := cleanStorage(context.Background(), container.GetStorageFactory().GetDefault(),
		container.GetPhotosRepository(), dryRun, minAge)
	printCleanStats(stats, dryRun)

	if len(stats.errors) > 0 {
		return fmt.Errorf("encountered %d errors during cleanup", len(stats.errors))
	}
	return nil
}

// cleanStorage 对比存储与记录，删除孤儿文件并统计缺失文件
// 修改时间在 minAge 以内的孤儿文件会被保留
func cleanStorage(ctx context.Context, provider storage.Provider, repo photoLister, dryRun bool, minAge time.Duration) *cleanStats {
	stats := &cleanStats{}
	log.Printf("Checking '%s' storage for orphan files...", provider.Name())

	photos, err := repo.List(ctx)
	if err != nil {
		stats.errors = append(stats.errors, fmt.Sprintf("list photo records failed: %v", err))
		return stats
	}

	known := make(map[string]bool, len(photos))
	for _, p := range photos {
		identifier := storage.IdentifierFromPath(p.FilePath)
		known[identifier] = true

		exists, err := provider.Exists(ctx, identifier)
		if err != nil {
			log.Printf("Warning: failed to check existence of %s: %v", identifier, err)
			continue
		}
		if !exists {
			stats.missingFiles++
			log.Printf("Photo %d references missing file %s", p.ID, identifier)
		}
	}

	identifiers, err := provider.List(ctx)
	if err != nil {
		stats.errors = append(stats.errors, fmt.Sprintf("list storage files failed: %v", err))
		return stats
	}

	for _, identifier := range identifiers {
		if known[identifier] {
			continue
		}
		if minAge > 0 {
			recent, err := modifiedWithin(ctx, provider, identifier, minAge)
			if err != nil {
				log.Printf("Warning: failed to check age of %s: %v", identifier, err)
				continue
			}
			if recent {
				stats.skippedRecentFiles++
				continue
			}
		}
		stats.orphanStorageFiles++
		if dryRun {
			log.Printf("[DRY-RUN] Would delete orphan file: %s", identifier)
			continue
		}
		if err := provider.DeleteWithContext(ctx, identifier); err != nil {
			stats.errors = append(stats.errors, fmt.Sprintf("delete %s failed: %v", identifier, err))
			continue
		}
		stats.deletedStorageFiles++
		log.Printf("Deleted orphan file: %s", identifier)
	}

	return stats
}

// modifiedWithin 判断对象是否在 d 以内被修改过，修改时间未知时视为较新
func modifiedWithin(ctx context.Context, provider storage.Provider, identifier string, d time.Duration) (bool, error) {
	obj, err := provider.GetWithContext(ctx, identifier)
	if err != nil {
		return false, err
	}
	_ = obj.Reader.Close()

	if obj.ModTime.IsZero() {
		return true, nil
	}
	return time.Since(obj.ModTime) < d, nil
}

// printCleanStats 打印清理统计
func printCleanStats(stats *cleanStats, dryRun bool) {
	fmt.Println()
	fmt.Println("========================================")
	if dryRun {
		fmt.Println("           [DRY RUN MODE]")
	}
	fmt.Println("         Clean Statistics")
	fmt.Println("========================================")
	fmt.Printf("Orphan storage files found: %d\n", stats.orphanStorageFiles)
	fmt.Printf("Storage files deleted:      %d\n", stats.deletedStorageFiles)
	fmt.Printf("Recent files skipped:       %d\n", stats.skippedRecentFiles)
	fmt.Printf("Records missing a file:     %d\n", stats.missingFiles)
	fmt.Println("========================================")

	if len(stats.errors) > 0 {
		fmt.Println("\nErrors encountered:")
		for _, err := range stats.errors {
			fmt.Printf("  - %s\n", err)
		}
	}
}
