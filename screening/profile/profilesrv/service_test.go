package profilesrv_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/internal/ai/skillner"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/profile"
	"github.com/Abraxas-365/sift/screening/profile/profilesrv"
	"github.com/Abraxas-365/sift/screening/refdata"
)

// Mock Repositories

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id kernel.ProfileID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepo) ListByOwner(ctx context.Context, owner kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Profile], error) {
	args := m.Called(ctx, owner, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Paginated[profile.Profile]), args.Error(1)
}

func (m *MockProfileRepo) ListByScreening(ctx context.Context, id kernel.ScreeningID) ([]*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Profile), args.Error(1)
}

func (m *MockProfileRepo) Delete(ctx context.Context, id kernel.ProfileID) error {
	return m.Called(ctx, id).Error(0)
}

type MockScreeningRepo struct {
	mock.Mock
}

func (m *MockScreeningRepo) Create(ctx context.Context, s *profile.Screening) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockScreeningRepo) GetByID(ctx context.Context, id kernel.ScreeningID) (*profile.Screening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Screening), args.Error(1)
}

func (m *MockScreeningRepo) ListByRecruiter(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Screening], error) {
	args := m.Called(ctx, recruiter, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Paginated[profile.Screening]), args.Error(1)
}

func (m *MockScreeningRepo) CreateTask(ctx context.Context, t *profile.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockScreeningRepo) GetTask(ctx context.Context, taskID string) (*profile.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Task), args.Error(1)
}

func (m *MockScreeningRepo) MarkTaskProcessing(ctx context.Context, taskID string) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *MockScreeningRepo) MarkTaskCompleted(ctx context.Context, taskID string, profileID kernel.ProfileID) error {
	return m.Called(ctx, taskID, profileID).Error(0)
}

func (m *MockScreeningRepo) MarkTaskFailed(ctx context.Context, taskID string, errorMsg string) error {
	return m.Called(ctx, taskID, errorMsg).Error(0)
}

type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *profile.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskQueue) Dequeue(ctx context.Context, timeout time.Duration) (*profile.Task, error) {
	args := m.Called(ctx, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Task), args.Error(1)
}

func (m *MockTaskQueue) EnqueueDelayed(ctx context.Context, task *profile.Task, delay time.Duration) error {
	return m.Called(ctx, task, delay).Error(0)
}

func (m *MockTaskQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskQueue) Size(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockFileReader implements fsx.FileReader over an in-memory map.
type MockFileReader struct {
	files map[string][]byte
}

func (m *MockFileReader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}
	return data, nil
}

func (m *MockFileReader) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

const sampleResume = `Jane Doe
Email: jane.doe@example.com
Phone: +1-555-123-4567

EDUCATION

Bachelor of Science in Computer Science
Example University, 2014 - 2018

SKILLS

Python, SQL, Machine Learning

EXPERIENCE

6 years of experience building data pipelines.
`

func testTables() *refdata.Tables {
	return refdata.New(
		[]string{"Python", "SQL", "Machine Learning", "Docker"},
		map[string]string{"ML": "Machine Learning"},
		[]string{"Computer Science", "Mathematics"},
		nil,
	)
}

type fixture struct {
	repo       *MockProfileRepo
	screenings *MockScreeningRepo
	queue      *MockTaskQueue
	files      *MockFileReader
	svc        *profilesrv.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:       new(MockProfileRepo),
		screenings: new(MockScreeningRepo),
		queue:      new(MockTaskQueue),
		files:      &MockFileReader{files: map[string][]byte{}},
	}
	f.svc = profilesrv.NewService(f.repo, f.screenings, f.queue, testTables(), skillner.NewNoop(), f.files)
	return f
}

func TestParseDocument(t *testing.T) {
	owner := kernel.NewUserID("user-1")

	t.Run("assembles a scored profile from a strong resume", func(t *testing.T) {
		f := newFixture()
		f.files.files["uploads/resume.txt"] = []byte(sampleResume)
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("*profile.Profile")).Return(nil)

		resp, err := f.svc.ParseDocument(context.Background(), profile.ParseDocumentRequest{
			OwnerID:  owner,
			FilePath: "uploads/resume.txt",
			FileName: "resume.txt",
		})
		require.NoError(t, err)

		p := resp.Profile
		assert.Equal(t, "Jane", p.Contact.FirstName)
		assert.Equal(t, "Doe", p.Contact.LastName)
		assert.Equal(t, "jane.doe@example.com", p.Contact.Email)
		assert.Equal(t, "+1-555-123-4567", p.Contact.Phone)
		assert.Equal(t, profile.DegreeBachelor, p.Education.Degree)
		assert.Equal(t, "Computer Science", p.Education.Major)
		assert.True(t, p.Skills.Contains("Python"))
		assert.True(t, p.Skills.Contains("SQL"))
		assert.Equal(t, profile.LevelMidSenior, p.Level)
		assert.Greater(t, p.Score, 80)
		f.repo.AssertExpectations(t)
	})

	t.Run("empty document is unreadable", func(t *testing.T) {
		f := newFixture()
		f.files.files["uploads/blank.txt"] = []byte("  \n\t\n ")

		_, err := f.svc.ParseDocument(context.Background(), profile.ParseDocumentRequest{
			OwnerID:  owner,
			FilePath: "uploads/blank.txt",
			FileName: "blank.txt",
		})
		assert.ErrorIs(t, err, profile.ErrUnreadableDocument())
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unsupported extension is rejected before reading", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.ParseDocument(context.Background(), profile.ParseDocumentRequest{
			OwnerID:  owner,
			FilePath: "uploads/resume.exe",
			FileName: "resume.exe",
		})
		assert.ErrorIs(t, err, profile.ErrInvalidFileFormat())
	})

	t.Run("storage failure surfaces as file read error", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.ParseDocument(context.Background(), profile.ParseDocumentRequest{
			OwnerID:  owner,
			FilePath: "uploads/missing.txt",
			FileName: "missing.txt",
		})
		assert.ErrorIs(t, err, profile.ErrFileReadFailed())
	})
}

func TestGetProfileOwnership(t *testing.T) {
	f := newFixture()
	stored := &profile.Profile{ID: "p1", OwnerID: kernel.NewUserID("user-1")}
	f.repo.On("GetByID", mock.Anything, kernel.ProfileID("p1")).Return(stored, nil)

	t.Run("owner sees the profile", func(t *testing.T) {
		p, err := f.svc.GetProfile(context.Background(), kernel.NewUserID("user-1"), "p1")
		require.NoError(t, err)
		assert.Equal(t, stored, p)
	})

	t.Run("other users do not", func(t *testing.T) {
		_, err := f.svc.GetProfile(context.Background(), kernel.NewUserID("intruder"), "p1")
		assert.ErrorIs(t, err, profile.ErrOwnerMismatch())
	})
}

func TestCreateScreening(t *testing.T) {
	recruiter := kernel.NewUserID("recruiter-1")

	t.Run("creates a task per document and enqueues them", func(t *testing.T) {
		f := newFixture()
		f.screenings.On("Create", mock.Anything, mock.AnythingOfType("*profile.Screening")).Return(nil)
		f.screenings.On("CreateTask", mock.Anything, mock.AnythingOfType("*profile.Task")).Return(nil).Times(2)
		f.queue.On("Enqueue", mock.Anything, mock.AnythingOfType("*profile.Task")).Return(nil).Times(2)

		screening, err := f.svc.CreateScreening(context.Background(), profile.CreateScreeningRequest{
			RecruiterID:    recruiter,
			RoleName:       "Data Engineer",
			RequiredSkills: []string{"Python", "SQL"},
			Documents: []profile.ScreeningDocument{
				{FilePath: "uploads/a.pdf", FileName: "a.pdf"},
				{FilePath: "uploads/b.pdf", FileName: "b.pdf"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, screening.TotalDocuments)
		assert.Equal(t, profile.ScreeningPending, screening.Status)
		assert.True(t, screening.RequiredSkills.Contains("Python"))
		f.screenings.AssertExpectations(t)
		f.queue.AssertExpectations(t)
	})

	t.Run("rejects a screening without documents", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateScreening(context.Background(), profile.CreateScreeningRequest{
			RecruiterID: recruiter,
		})
		assert.ErrorIs(t, err, profile.ErrInvalidProfileData())
	})
}

func TestGetScreeningStatus(t *testing.T) {
	recruiter := kernel.NewUserID("recruiter-1")
	screening := &profile.Screening{
		ID:             "s1",
		RecruiterID:    recruiter,
		RoleName:       "Data Engineer",
		RequiredSkills: profile.NewSkillSet("Python", "SQL", "Docker"),
		TotalDocuments: 2,
		ProcessedCount: 2,
	}

	t.Run("results ranked by match fraction then score", func(t *testing.T) {
		f := newFixture()
		f.screenings.On("GetByID", mock.Anything, kernel.ScreeningID("s1")).Return(screening, nil)
		f.repo.On("ListByScreening", mock.Anything, kernel.ScreeningID("s1")).Return([]*profile.Profile{
			{ID: "weak", Skills: profile.NewSkillSet("Python"), Score: 90},
			{ID: "strong", Skills: profile.NewSkillSet("Python", "SQL", "Docker"), Score: 40},
		}, nil)

		resp, err := f.svc.GetScreeningStatus(context.Background(), recruiter, "s1")
		require.NoError(t, err)
		require.Len(t, resp.Results, 2)

		assert.Equal(t, kernel.ProfileID("strong"), resp.Results[0].Profile.ID)
		assert.Equal(t, 1.0, resp.Results[0].MatchFraction)
		assert.Empty(t, resp.Results[0].MissingSkills)

		assert.Equal(t, kernel.ProfileID("weak"), resp.Results[1].Profile.ID)
		assert.InDelta(t, 1.0/3.0, resp.Results[1].MatchFraction, 1e-9)
		assert.Equal(t, []string{"Docker", "SQL"}, resp.Results[1].MissingSkills)
	})

	t.Run("screenings are private to their recruiter", func(t *testing.T) {
		f := newFixture()
		f.screenings.On("GetByID", mock.Anything, kernel.ScreeningID("s1")).Return(screening, nil)

		_, err := f.svc.GetScreeningStatus(context.Background(), kernel.NewUserID("other"), "s1")
		assert.ErrorIs(t, err, profile.ErrScreeningNotFound())
	})
}

func TestProcessTask(t *testing.T) {
	task := func() *profile.Task {
		return &profile.Task{
			ID:          "t1",
			ScreeningID: "s1",
			OwnerID:     kernel.NewUserID("recruiter-1"),
			FilePath:    "uploads/resume.txt",
			FileName:    "resume.txt",
		}
	}

	t.Run("successful parse completes the task", func(t *testing.T) {
		f := newFixture()
		f.files.files["uploads/resume.txt"] = []byte(sampleResume)
		f.screenings.On("MarkTaskProcessing", mock.Anything, "t1").Return(nil)
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("*profile.Profile")).Return(nil)
		f.screenings.On("MarkTaskCompleted", mock.Anything, "t1", mock.AnythingOfType("kernel.ProfileID")).Return(nil)

		require.NoError(t, f.svc.ProcessTask(context.Background(), task()))
		f.screenings.AssertExpectations(t)
	})

	t.Run("failed parse records the failure and schedules a retry", func(t *testing.T) {
		f := newFixture()
		// No file in storage: the parse fails.
		f.screenings.On("MarkTaskProcessing", mock.Anything, "t1").Return(nil)
		f.screenings.On("MarkTaskFailed", mock.Anything, "t1", mock.AnythingOfType("string")).Return(nil)
		f.queue.On("EnqueueDelayed", mock.Anything, mock.AnythingOfType("*profile.Task"), mock.AnythingOfType("time.Duration")).Return(nil)

		err := f.svc.ProcessTask(context.Background(), task())
		assert.Error(t, err)
		f.screenings.AssertExpectations(t)
		f.queue.AssertExpectations(t)
	})

	t.Run("exhausted attempts are not rescheduled", func(t *testing.T) {
		f := newFixture()
		exhausted := task()
		exhausted.Attempts = profile.MaxTaskAttempts - 1
		f.screenings.On("MarkTaskProcessing", mock.Anything, "t1").Return(nil)
		f.screenings.On("MarkTaskFailed", mock.Anything, "t1", mock.AnythingOfType("string")).Return(nil)

		err := f.svc.ProcessTask(context.Background(), exhausted)
		assert.Error(t, err)
		f.queue.AssertNotCalled(t, "EnqueueDelayed", mock.Anything, mock.Anything, mock.Anything)
	})
}
