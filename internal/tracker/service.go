package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tracker/internal/models"
	"tracker/internal/storage"
)

// Service owns the tracker state for a process: the queue, the log and the
// notes, loaded once from storage and guarded by a single lock. Mutating
// calls validate, apply the change and persist the affected snapshot
// before returning; read calls work on copies.
type Service struct {
	mu     sync.RWMutex
	store  storage.Storage
	logger *zap.Logger

	queue *MaterialQueue
	log   *ReadingLog
	notes []models.Note

	dailyGoal int
}

// NewService loads all snapshots from store. dailyGoal is the pace used
// while the log is still empty and the target daily reports compare
// against; it must be positive.
func NewService(ctx context.Context, store storage.Storage, dailyGoal int, logger *zap.Logger) (*Service, error) {
	if dailyGoal <= 0 {
		return nil, fmt.Errorf("%w: daily goal must be positive, got %d", ErrInvalidArgument, dailyGoal)
	}

	materials, err := store.LoadMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	logSnap, err := store.LoadLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reading log: %w", err)
	}
	notes, err := store.LoadNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	logger.Info("Tracker state loaded",
		zap.Int("queued", len(materials.Queue)),
		zap.Int("processed", len(materials.Processed)),
		zap.Int("logged_days", len(logSnap)),
		zap.Int("notes", len(notes)))

	return &Service{
		store:     store,
		logger:    logger,
		queue:     MaterialQueueFromSnapshot(materials),
		log:       ReadingLogFromSnapshot(logSnap),
		notes:     notes,
		dailyGoal: dailyGoal,
	}, nil
}

// Record logs today's page count.
func (s *Service) Record(ctx context.Context, pages int) error {
	return s.RecordOn(ctx, models.Today(), pages)
}

// RecordYesterday logs yesterday's page count.
func (s *Service) RecordYesterday(ctx context.Context, pages int) error {
	return s.RecordOn(ctx, models.Yesterday(), pages)
}

// RecordOn logs the page count for an arbitrary day.
func (s *Service) RecordOn(ctx context.Context, date models.Date, pages int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.log.SetEntry(date, pages); err != nil {
		return err
	}
	if err := s.saveLog(ctx); err != nil {
		return err
	}
	s.logger.Info("Pages logged", zap.Stringer("date", date), zap.Int("pages", pages))
	return nil
}

// RecordLastPage logs today's reading derived from the page the reader
// stopped on. It returns the page count actually recorded.
func (s *Service) RecordLastPage(ctx context.Context, lastPage int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages, err := s.log.SetLastPage(models.Today(), lastPage)
	if err != nil {
		return 0, err
	}
	if err := s.saveLog(ctx); err != nil {
		return 0, err
	}
	s.logger.Info("Pages logged from last page",
		zap.Int("last_page", lastPage), zap.Int("pages", pages))
	return pages, nil
}

// AddMaterial appends a material to the tail of the queue.
func (s *Service) AddMaterial(ctx context.Context, title, author string, pages int) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, err := s.queue.Add(title, author, pages)
	if err != nil {
		return models.Material{}, err
	}
	if err := s.saveMaterials(ctx); err != nil {
		return models.Material{}, err
	}
	s.logger.Info("Material added",
		zap.Int("id", material.ID), zap.String("title", material.Title))
	return material, nil
}

// BeginActive starts reading the head of the queue on the given date.
func (s *Service) BeginActive(ctx context.Context, date models.Date) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, err := s.queue.Start(date)
	if err != nil {
		return models.Material{}, err
	}
	if err := s.saveMaterials(ctx); err != nil {
		return models.Material{}, err
	}
	s.logger.Info("Material started",
		zap.Int("id", material.ID), zap.Stringer("start", date))
	return material, nil
}

// CompleteActive completes the head of the queue on the given date and
// moves it to the processed list.
func (s *Service) CompleteActive(ctx context.Context, date models.Date) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, err := s.queue.Complete(date)
	if err != nil {
		return models.Material{}, err
	}
	if err := s.saveMaterials(ctx); err != nil {
		return models.Material{}, err
	}
	s.logger.Info("Material completed",
		zap.Int("id", material.ID), zap.Stringer("end", date))
	return material, nil
}

// AddNote attaches a note to an existing material. Chapter and page may be
// zero when unknown; a positive page must not pass the material's end.
func (s *Service) AddNote(ctx context.Context, materialID int, content string, chapter, page int) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content = strings.TrimSpace(content)
	if content == "" {
		return models.Note{}, fmt.Errorf("%w: note content must not be empty", ErrInvalidArgument)
	}
	if chapter < 0 || page < 0 {
		return models.Note{}, fmt.Errorf("%w: chapter and page must be >= 0", ErrInvalidArgument)
	}
	material, err := s.queue.ByID(materialID)
	if err != nil {
		return models.Note{}, err
	}
	if page > material.Pages {
		return models.Note{}, fmt.Errorf("%w: page %d is past the end of «%s» (%d pages)",
			ErrInvalidArgument, page, material.Title, material.Pages)
	}

	note := models.Note{
		ID:         s.nextNoteID(),
		MaterialID: materialID,
		Content:    content,
		Chapter:    chapter,
		Page:       page,
		Date:       models.Today(),
	}
	s.notes = append(s.notes, note)
	if err := s.saveNotes(ctx); err != nil {
		return models.Note{}, err
	}
	s.logger.Info("Note added",
		zap.Int("id", note.ID), zap.Int("material_id", materialID))
	return note, nil
}

// Queue returns the queued materials in reading order.
func (s *Service) Queue() []models.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Queue()
}

// Processed returns the processed materials in completion order.
func (s *Service) Processed() []models.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Processed()
}

// QueueWhere returns the queued materials matching pred.
func (s *Service) QueueWhere(pred func(models.Material) bool) []models.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.QueueWhere(pred)
}

// ProcessedWhere returns the processed materials matching pred.
func (s *Service) ProcessedWhere(pred func(models.Material) bool) []models.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.ProcessedWhere(pred)
}

// MaterialByID finds a material in either list.
func (s *Service) MaterialByID(id int) (models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.ByID(id)
}

// Head returns the next material to read, started or not.
func (s *Service) Head() (models.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Head()
}

// Active returns the head of the queue if reading has begun.
func (s *Service) Active() (models.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Active()
}

// Entries returns the reading log sorted ascending by date.
func (s *Service) Entries() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Entries()
}

// Total returns the sum of all logged pages.
func (s *Service) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Total()
}

// Average returns the mean pages per logged day, rounded down.
func (s *Service) Average() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Average()
}

// Pace returns the pages per day used for projections: the log average, or
// the daily goal while nothing useful has been logged.
func (s *Service) Pace() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pace()
}

// DailyGoal returns the configured pages-per-day target.
func (s *Service) DailyGoal() int {
	return s.dailyGoal
}

// Projection returns the projected schedule for the whole queue at the
// current pace. An unstarted head is projected as starting today; the
// stored queue is left untouched.
func (s *Service) Projection() ([]ScheduledMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queue := s.queue.Queue()
	if len(queue) > 0 && !queue[0].IsStarted() {
		today := models.Today()
		queue[0].StartDate = &today
	}
	return Project(queue, s.pace())
}

// Stats summarizes the reading log. ok is false when nothing has been
// logged.
func (s *Service) Stats() (Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Stats()
}

// Notes returns all notes in creation order.
func (s *Service) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Note(nil), s.notes...)
}

// NotesFor returns the notes attached to one material, in creation order.
func (s *Service) NotesFor(materialID int) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Note
	for _, n := range s.notes {
		if n.MaterialID == materialID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Service) pace() int {
	if avg := s.log.Average(); avg > 0 {
		return avg
	}
	return s.dailyGoal
}

func (s *Service) nextNoteID() int {
	next := 1
	for _, n := range s.notes {
		if n.ID >= next {
			next = n.ID + 1
		}
	}
	return next
}

func (s *Service) saveMaterials(ctx context.Context) error {
	if err := s.store.SaveMaterials(ctx, s.queue.Snapshot()); err != nil {
		s.logger.Error("Failed to save materials", zap.Error(err))
		return fmt.Errorf("failed to save materials: %w", err)
	}
	return nil
}

func (s *Service) saveLog(ctx context.Context) error {
	if err := s.store.SaveLog(ctx, s.log.Snapshot()); err != nil {
		s.logger.Error("Failed to save reading log", zap.Error(err))
		return fmt.Errorf("failed to save reading log: %w", err)
	}
	return nil
}

func (s *Service) saveNotes(ctx context.Context) error {
	if err := s.store.SaveNotes(ctx, append([]models.Note(nil), s.notes...)); err != nil {
		s.logger.Error("Failed to save notes", zap.Error(err))
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}
