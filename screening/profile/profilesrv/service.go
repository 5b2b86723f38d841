package profilesrv

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/sift/internal/ai/skillner"
	"github.com/Abraxas-365/sift/internal/docext"
	"github.com/Abraxas-365/sift/internal/extract"
	"github.com/Abraxas-365/sift/internal/textproc"
	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/Abraxas-365/sift/screening/profile"
	"github.com/Abraxas-365/sift/screening/recommend"
	"github.com/Abraxas-365/sift/screening/refdata"
)

type Service struct {
	repo       profile.Repository
	screenings profile.ScreeningRepository
	queue      profile.TaskQueue
	tables     *refdata.Tables
	recognizer skillner.Recognizer
	fileReader fsx.FileReader
}

// NewService creates a new profile service
func NewService(
	repo profile.Repository,
	screenings profile.ScreeningRepository,
	queue profile.TaskQueue,
	tables *refdata.Tables,
	recognizer skillner.Recognizer,
	fileReader fsx.FileReader,
) *Service {
	return &Service{
		repo:       repo,
		screenings: screenings,
		queue:      queue,
		tables:     tables,
		recognizer: recognizer,
		fileReader: fileReader,
	}
}

// ============================================================================
// Extraction pipeline
// ============================================================================

// Extract runs every field extractor over normalized text and returns the
// combined result. An empty document fails explicitly; any single extractor
// failing is logged and leaves its field absent, it never aborts the others.
func (s *Service) Extract(ctx context.Context, text *textproc.NormalizedText, fileName string) (profile.Extraction, error) {
	ex := profile.Extraction{
		Education: profile.Education{Degree: profile.DegreeNone},
		Skills:    profile.NewSkillSet(),
		Level:     profile.LevelEntry,
	}
	if text.IsEmpty() {
		return ex, profile.ErrUnreadableDocument().
			WithDetail("file_name", fileName)
	}

	safeExtract("contact", func() {
		ex.Contact = extract.Contact(text, fileName)
	})
	safeExtract("education", func() {
		ex.Education = extract.Education(text, s.tables)
	})
	safeExtract("skills", func() {
		ex.Skills = extract.Skills(ctx, text, s.tables, s.recognizer)
	})
	safeExtract("experience", func() {
		ex.Years, ex.Level = extract.Experience(text)
	})
	return ex, nil
}

// safeExtract isolates one extractor: a failure inside it is diagnostics,
// not an abort of the remaining fields.
func safeExtract(field string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("extractor %s failed, leaving field unresolved: %v", field, r)
		}
	}()
	fn()
}

// ParseDocument reads one uploaded resume, runs the pipeline and stores the
// assembled profile.
func (s *Service) ParseDocument(ctx context.Context, req profile.ParseDocumentRequest) (*profile.ParseDocumentResponse, error) {
	logx.Infof("Parsing document %s for user %s", req.FileName, req.OwnerID)

	p, err := s.parseAndStore(ctx, req.OwnerID, "", req.FilePath, req.FileName)
	if err != nil {
		return nil, err
	}
	return &profile.ParseDocumentResponse{Profile: p}, nil
}

func (s *Service) parseAndStore(ctx context.Context, owner kernel.UserID, screeningID kernel.ScreeningID, filePath, fileName string) (*profile.Profile, error) {
	if !docext.IsSupported(fileName) {
		return nil, profile.ErrInvalidFileFormat().
			WithDetail("file_name", fileName).
			WithDetail("supported_formats", docext.SupportedExtensions)
	}

	data, err := s.fileReader.ReadFile(ctx, filePath)
	if err != nil {
		return nil, profile.ErrFileReadFailed().
			WithDetail("file_path", filePath).
			WithDetail("error", err.Error())
	}

	raw, err := docext.ExtractText(data, fileName)
	if err != nil {
		return nil, profile.ErrUnreadableDocument().
			WithDetail("file_name", fileName).
			WithDetail("error", err.Error())
	}

	text := textproc.Normalize(raw)
	ex, err := s.Extract(ctx, text, fileName)
	if err != nil {
		return nil, err
	}

	p := profile.NewProfile(kernel.NewProfileID(uuid.New().String()), owner, fileName, filePath, ex)
	p.ScreeningID = screeningID
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logx.Infof("Parsed %s: score=%d level=%s skills=%d", fileName, p.Score, p.Level, len(p.Skills))
	return p, nil
}

// ============================================================================
// Profile queries
// ============================================================================

func (s *Service) GetProfile(ctx context.Context, owner kernel.UserID, id kernel.ProfileID) (*profile.Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != owner {
		return nil, profile.ErrOwnerMismatch().
			WithDetail("profile_id", id.String())
	}
	return p, nil
}

func (s *Service) ListProfiles(ctx context.Context, owner kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Profile], error) {
	return s.repo.ListByOwner(ctx, owner, pagination.Normalize())
}

func (s *Service) DeleteProfile(ctx context.Context, owner kernel.UserID, id kernel.ProfileID) error {
	if _, err := s.GetProfile(ctx, owner, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ============================================================================
// Recruiter screenings
// ============================================================================

// CreateScreening records a batch run and enqueues one task per document.
// Workers pick the tasks up independently; documents are embarrassingly
// parallel since extraction shares only the read-only reference tables.
func (s *Service) CreateScreening(ctx context.Context, req profile.CreateScreeningRequest) (*profile.Screening, error) {
	if len(req.Documents) == 0 {
		return nil, profile.ErrInvalidProfileData().
			WithDetail("reason", "screening needs at least one document")
	}

	now := time.Now()
	screening := &profile.Screening{
		ID:             kernel.NewScreeningID(uuid.New().String()),
		RecruiterID:    req.RecruiterID,
		RoleName:       req.RoleName,
		RequiredSkills: profile.NewSkillSet(req.RequiredSkills...),
		TotalDocuments: len(req.Documents),
		Status:         profile.ScreeningPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.screenings.Create(ctx, screening); err != nil {
		return nil, err
	}

	for _, doc := range req.Documents {
		task := &profile.Task{
			ID:          uuid.New().String(),
			ScreeningID: screening.ID,
			OwnerID:     req.RecruiterID,
			FilePath:    doc.FilePath,
			FileName:    doc.FileName,
			Status:      profile.TaskPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.screenings.CreateTask(ctx, task); err != nil {
			return nil, err
		}
		if err := s.queue.Enqueue(ctx, task); err != nil {
			return nil, profile.ErrQueueEnqueueFailed().
				WithDetail("task_id", task.ID).
				WithDetail("error", err.Error())
		}
	}

	logx.Infof("Screening %s created with %d documents", screening.ID, screening.TotalDocuments)
	return screening, nil
}

// GetScreeningStatus returns batch progress plus the profiles parsed so far,
// each matched against the screening's required skills and ranked best
// first.
func (s *Service) GetScreeningStatus(ctx context.Context, recruiter kernel.UserID, id kernel.ScreeningID) (*profile.ScreeningStatusResponse, error) {
	screening, err := s.screenings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if screening.RecruiterID != recruiter {
		return nil, profile.ErrScreeningNotFound().
			WithDetail("screening_id", id.String())
	}

	profiles, err := s.repo.ListByScreening(ctx, id)
	if err != nil {
		return nil, err
	}

	results := make([]*profile.ScreeningResult, 0, len(profiles))
	for _, p := range profiles {
		result := &profile.ScreeningResult{Profile: p}
		if len(screening.RequiredSkills) > 0 {
			rec := recommend.Match(screening.RoleName, screening.RequiredSkills, p.Skills)
			result.MatchFraction = rec.MatchFraction
			result.MissingSkills = rec.MissingSkills
		}
		results = append(results, result)
	}
	sortResults(results)

	return &profile.ScreeningStatusResponse{
		Screening: screening,
		Results:   results,
	}, nil
}

func (s *Service) ListScreenings(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Screening], error) {
	return s.screenings.ListByRecruiter(ctx, recruiter, pagination.Normalize())
}

// sortResults orders by match fraction, then score, both descending.
func sortResults(results []*profile.ScreeningResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchFraction != results[j].MatchFraction {
			return results[i].MatchFraction > results[j].MatchFraction
		}
		return results[i].Profile.Score > results[j].Profile.Score
	})
}

// ============================================================================
// Worker processing
// ============================================================================

// ProcessTask parses one screening document. Failures are recorded on the
// task; retryable ones go back on the delayed queue.
func (s *Service) ProcessTask(ctx context.Context, task *profile.Task) error {
	if err := s.screenings.MarkTaskProcessing(ctx, task.ID); err != nil {
		return profile.ErrTaskUpdateFailed().
			WithDetail("task_id", task.ID).
			WithDetail("error", err.Error())
	}

	p, err := s.parseAndStore(ctx, task.OwnerID, task.ScreeningID, task.FilePath, task.FileName)
	if err != nil {
		return s.failTask(ctx, task, err)
	}

	if err := s.screenings.MarkTaskCompleted(ctx, task.ID, p.ID); err != nil {
		return profile.ErrTaskUpdateFailed().
			WithDetail("task_id", task.ID).
			WithDetail("error", err.Error())
	}
	return nil
}

func (s *Service) failTask(ctx context.Context, task *profile.Task, cause error) error {
	task.Attempts++
	logx.Warnf("Task %s attempt %d failed: %v", task.ID, task.Attempts, cause)

	if err := s.screenings.MarkTaskFailed(ctx, task.ID, cause.Error()); err != nil {
		logx.Errorf("Failed to record task failure for %s: %v", task.ID, err)
	}

	if task.CanRetry() {
		delay := time.Duration(task.Attempts) * 30 * time.Second
		if err := s.queue.EnqueueDelayed(ctx, task, delay); err != nil {
			logx.Errorf("Failed to schedule retry for task %s: %v", task.ID, err)
		}
	}
	return cause
}
