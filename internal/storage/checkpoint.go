package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// CheckpointManager handles database checkpoint operations.
type CheckpointManager struct {
	db             *sql.DB
	now            func() time.Time
	dbPath         string
	checkpointsDir string
}

// CheckpointMetadata contains metadata about a checkpoint.
type CheckpointMetadata struct {
	CreatedAt     time.Time      `json:"created_at"`
	RowCounts     map[string]int `json:"row_counts"`
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	FileSize      int64          `json:"file_size"`
	SchemaVersion int            `json:"schema_version"`
	IsAuto        bool           `json:"is_auto"`
}

// CheckpointInfo represents information about a checkpoint for listing.
type CheckpointInfo struct {
	CreatedAt     time.Time
	ID            string
	Description   string
	FileSize      int64
	Keys          int
	SchemaVersion int
	IsAuto        bool
}

// Checkpoint errors.
var (
	ErrCheckpointNotFound  = errors.New("checkpoint not found")
	ErrCheckpointCorrupted = errors.New("checkpoint integrity check failed")
	ErrDiskSpaceLow        = errors.New("insufficient disk space for checkpoint")
	ErrCheckpointExists    = errors.New("checkpoint already exists")
	ErrInvalidCheckpointID = errors.New("invalid checkpoint tag: cannot contain path separators")
)

const maxAutoCheckpoints = 5

// NewCheckpointManager creates a new checkpoint manager. Checkpoints live in a
// "checkpoints" directory next to the database file.
func NewCheckpointManager(db *sql.DB, dbPath string) (*CheckpointManager, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	checkpointsDir := filepath.Join(filepath.Dir(absPath), "checkpoints")
	if err := os.MkdirAll(checkpointsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &CheckpointManager{
		db:             db,
		dbPath:         absPath,
		checkpointsDir: checkpointsDir,
		now:            time.Now,
	}, nil
}

// Create snapshots the database under tag. An empty tag is generated from the clock.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointInfo, error) {
	return cm.create(ctx, tag, description, false)
}

// AutoCheckpoint snapshots the database before a destructive operation and
// prunes old automatic checkpoints.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, operation string) (*CheckpointInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", operation, cm.now().Format("2006-01-02-150405"))
	info, err := cm.create(ctx, tag, fmt.Sprintf("Automatic checkpoint before %s", operation), true)
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	if err := cm.cleanupOldAutoCheckpoints(ctx); err != nil {
		slog.Warn("failed to clean up old auto-checkpoints", "error", err)
	}

	return info, nil
}

func (cm *CheckpointManager) create(ctx context.Context, tag, description string, auto bool) (*CheckpointInfo, error) {
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", cm.now().Format("2006-01-02-150405"))
	}
	if err := validateCheckpointID(tag); err != nil {
		return nil, err
	}

	checkpointPath := filepath.Join(cm.checkpointsDir, tag+".db")
	if _, err := os.Stat(checkpointPath); err == nil {
		return nil, ErrCheckpointExists
	}

	var schemaVersion int
	if err := cm.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&schemaVersion); err != nil {
		return nil, fmt.Errorf("failed to get schema version: %w", err)
	}

	rowCounts := cm.collectRowCounts(ctx)

	dbInfo, err := os.Stat(cm.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	if !cm.hasEnoughDiskSpace(int64(float64(dbInfo.Size()) * 1.1)) {
		return nil, ErrDiskSpaceLow
	}

	if err := cm.backupDatabase(ctx, checkpointPath); err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}

	checkpointInfo, err := os.Stat(checkpointPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat checkpoint: %w", err)
	}

	metadata := CheckpointMetadata{
		ID:            tag,
		CreatedAt:     cm.now(),
		Description:   description,
		FileSize:      checkpointInfo.Size(),
		RowCounts:     rowCounts,
		SchemaVersion: schemaVersion,
		IsAuto:        auto,
	}

	if err := cm.saveMetadata(cm.metadataPath(tag), metadata); err != nil {
		_ = os.Remove(checkpointPath)
		return nil, fmt.Errorf("failed to save checkpoint metadata: %w", err)
	}

	if err := cm.storeMetadataInDB(ctx, metadata); err != nil {
		slog.Warn("failed to record checkpoint in database", "error", err, "checkpoint", tag)
	}

	slog.Info("Created checkpoint", "id", tag, "size", metadata.FileSize, "auto", auto)

	info := metadata.info()
	return &info, nil
}

// List returns all checkpoints, newest first.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	checkpoints := make([]CheckpointInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}

		metadata, err := cm.loadMetadata(filepath.Join(cm.checkpointsDir, entry.Name()))
		if err != nil {
			slog.Debug("skipping unreadable checkpoint metadata", "file", entry.Name(), "error", err)
			continue
		}
		checkpoints = append(checkpoints, metadata.info())
	}

	slices.SortFunc(checkpoints, func(a, b CheckpointInfo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return checkpoints, nil
}

// Restore replaces the database file with a checkpoint. The database handle
// is closed; callers must reopen storage afterwards.
func (cm *CheckpointManager) Restore(_ context.Context, checkpointID string) error {
	if err := validateCheckpointID(checkpointID); err != nil {
		return err
	}

	checkpointPath := filepath.Join(cm.checkpointsDir, checkpointID+".db")
	if _, err := os.Stat(checkpointPath); err != nil {
		if os.IsNotExist(err) {
			return ErrCheckpointNotFound
		}
		return fmt.Errorf("failed to access checkpoint: %w", err)
	}

	if _, err := cm.loadMetadata(cm.metadataPath(checkpointID)); err != nil {
		return fmt.Errorf("failed to load checkpoint metadata: %w", err)
	}

	if err := cm.verifyCheckpointIntegrity(checkpointPath); err != nil {
		return fmt.Errorf("%w: %v", ErrCheckpointCorrupted, err)
	}

	if err := cm.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	backupPath := cm.dbPath + ".restore-backup"
	if err := cm.copyFile(cm.dbPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup current database: %w", err)
	}

	if err := cm.copyFile(checkpointPath, cm.dbPath); err != nil {
		if restoreErr := cm.copyFile(backupPath, cm.dbPath); restoreErr != nil {
			slog.Error("failed to restore backup after checkpoint restore failure", "error", restoreErr)
		}
		return fmt.Errorf("failed to restore checkpoint: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		slog.Error("failed to remove backup file", "error", err)
	}

	return nil
}

// Delete removes a checkpoint.
func (cm *CheckpointManager) Delete(ctx context.Context, checkpointID string) error {
	if err := validateCheckpointID(checkpointID); err != nil {
		return err
	}

	checkpointPath := filepath.Join(cm.checkpointsDir, checkpointID+".db")
	if _, err := os.Stat(checkpointPath); err != nil {
		if os.IsNotExist(err) {
			return ErrCheckpointNotFound
		}
		return fmt.Errorf("failed to access checkpoint: %w", err)
	}

	if err := os.Remove(checkpointPath); err != nil {
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}

	if err := os.Remove(cm.metadataPath(checkpointID)); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "checkpoint", checkpointID)
	}

	if _, err := cm.db.ExecContext(ctx, "DELETE FROM checkpoint_metadata WHERE id = ?", checkpointID); err != nil {
		slog.Debug("failed to remove checkpoint metadata from database", "error", err, "checkpoint", checkpointID)
	}

	return nil
}

func (m CheckpointMetadata) info() CheckpointInfo {
	return CheckpointInfo{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt,
		Description:   m.Description,
		FileSize:      m.FileSize,
		Keys:          m.RowCounts["kv_store"],
		SchemaVersion: m.SchemaVersion,
		IsAuto:        m.IsAuto,
	}
}

func validateCheckpointID(id string) error {
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, `/\'";`) || strings.Contains(id, "..") {
		return ErrInvalidCheckpointID
	}
	return nil
}

func (cm *CheckpointManager) metadataPath(id string) string {
	return filepath.Join(cm.checkpointsDir, id+".meta.json")
}

func (cm *CheckpointManager) collectRowCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int)

	tableQueries := map[string]string{
		"kv_store":            "SELECT COUNT(*) FROM kv_store",
		"checkpoint_metadata": "SELECT COUNT(*) FROM checkpoint_metadata",
	}

	for table, query := range tableQueries {
		var count int
		if err := cm.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			counts[table] = 0
			continue
		}
		counts[table] = count
	}

	return counts
}

func (cm *CheckpointManager) hasEnoughDiskSpace(required int64) bool {
	testFile := filepath.Join(cm.checkpointsDir, ".space-test")
	// #nosec G304 - testFile is inside the managed checkpoints directory
	f, err := os.Create(testFile)
	if err != nil {
		return false
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close test file", "error", err)
		}
		if err := os.Remove(testFile); err != nil {
			slog.Error("failed to remove test file", "error", err)
		}
	}()

	return f.Truncate(required) == nil
}

func (cm *CheckpointManager) backupDatabase(ctx context.Context, destPath string) error {
	if _, err := cm.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	if strings.ContainsAny(destPath, `'";`) || !filepath.IsAbs(destPath) || strings.Contains(destPath, "..") {
		return fmt.Errorf("invalid destination path")
	}

	// #nosec G201 - destPath is validated above
	query := fmt.Sprintf("VACUUM INTO '%s'", destPath)
	if _, err := cm.db.ExecContext(ctx, query); err != nil {
		slog.Debug("VACUUM INTO failed, copying file instead", "error", err)
		return cm.copyFile(cm.dbPath, destPath)
	}

	return nil
}

func (cm *CheckpointManager) copyFile(src, dst string) error {
	if filepath.Clean(src) != src || filepath.Clean(dst) != dst {
		return fmt.Errorf("invalid file paths")
	}

	tmpDst := dst + ".tmp"

	// #nosec G304 - src is a cleaned path owned by the manager
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			slog.Error("failed to close source file", "error", closeErr)
		}
	}()

	// #nosec G304 - tmpDst is derived from a cleaned path
	destination, err := os.Create(tmpDst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmpDst)
		return err
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(tmpDst)
		return err
	}

	return os.Rename(tmpDst, dst)
}

func (cm *CheckpointManager) saveMetadata(path string, metadata CheckpointMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

func (cm *CheckpointManager) loadMetadata(path string) (*CheckpointMetadata, error) {
	// #nosec G304 - path is built by metadataPath or read from the checkpoints directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCheckpointNotFound
		}
		return nil, err
	}

	var metadata CheckpointMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}

	return &metadata, nil
}

func (cm *CheckpointManager) verifyCheckpointIntegrity(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}

	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	return nil
}

func (cm *CheckpointManager) storeMetadataInDB(ctx context.Context, metadata CheckpointMetadata) error {
	rowCountsJSON, err := json.Marshal(metadata.RowCounts)
	if err != nil {
		return err
	}

	query := `
		INSERT OR REPLACE INTO checkpoint_metadata
		(id, created_at, description, file_size, row_counts, schema_version, is_auto)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = cm.db.ExecContext(ctx, query,
		metadata.ID,
		metadata.CreatedAt,
		metadata.Description,
		metadata.FileSize,
		string(rowCountsJSON),
		metadata.SchemaVersion,
		metadata.IsAuto,
	)

	return err
}

func (cm *CheckpointManager) cleanupOldAutoCheckpoints(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	autoCount := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		autoCount++
		if autoCount > maxAutoCheckpoints {
			if err := cm.Delete(ctx, cp.ID); err != nil {
				slog.Debug("failed to delete old auto-checkpoint during cleanup", "error", err, "checkpoint", cp.ID)
			}
		}
	}

	return nil
}
