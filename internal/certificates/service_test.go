package certificates

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkurganov/gift-marketplace/internal/tags"
	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// ========================================
// MOCKS
// ========================================

type mockCertificateRepository struct {
	mock.Mock
}

func (m *mockCertificateRepository) Create(ctx context.Context, cert *GiftCertificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *mockCertificateRepository) Update(ctx context.Context, cert *GiftCertificate, replaceTags bool) error {
	args := m.Called(ctx, cert, replaceTags)
	return args.Error(0)
}

func (m *mockCertificateRepository) GetByID(ctx context.Context, id int64) (*GiftCertificate, error) {
	args := m.Called(ctx, id)
	cert, _ := args.Get(0).(*GiftCertificate)
	return cert, args.Error(1)
}

func (m *mockCertificateRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCertificateRepository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]GiftCertificate, int64, error) {
	args := m.Called(ctx, filters, params)
	result, _ := args.Get(0).([]GiftCertificate)
	total, _ := args.Get(1).(int64)
	return result, total, args.Error(2)
}

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) Reconcile(ctx context.Context, names []string) ([]tags.Tag, error) {
	args := m.Called(ctx, names)
	result, _ := args.Get(0).([]tags.Tag)
	return result, args.Error(1)
}

// ========================================
// HELPERS
// ========================================

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func createTestCertificate(id int64) *GiftCertificate {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &GiftCertificate{
		ID:             id,
		Name:           "Skydiving",
		Description:    "Tandem jump from 4000m",
		Duration:       30,
		Price:          199.99,
		CreateDate:     created,
		LastUpdateDate: created,
		Tags:           []tags.Tag{{ID: 1, Name: "extreme"}},
	}
}

// ========================================
// CREATE TESTS
// ========================================

func TestCertificateCreate(t *testing.T) {
	t.Run("sets both timestamps to the same UTC instant", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		reconciler.On("Reconcile", mock.Anything, []string{"extreme"}).
			Return([]tags.Tag{{ID: 1, Name: "extreme"}}, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		before := time.Now().UTC()
		cert, err := service.Create(context.Background(), &CreateRequest{
			Name:     "Skydiving",
			Duration: 30,
			Price:    floatPtr(199.99),
			Tags:     []tags.TagRequest{{Name: "extreme"}},
		})
		after := time.Now().UTC()

		require.NoError(t, err)
		assert.Equal(t, cert.CreateDate, cert.LastUpdateDate)
		assert.Equal(t, time.UTC, cert.CreateDate.Location())
		assert.False(t, cert.CreateDate.Before(before))
		assert.False(t, cert.CreateDate.After(after))
		assert.Equal(t, []tags.Tag{{ID: 1, Name: "extreme"}}, cert.Tags)
		repo.AssertExpectations(t)
		reconciler.AssertExpectations(t)
	})

	t.Run("zero price is valid", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		reconciler.On("Reconcile", mock.Anything, []string{}).
			Return([]tags.Tag{}, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		cert, err := service.Create(context.Background(), &CreateRequest{
			Name:     "Free sample",
			Duration: 1,
			Price:    floatPtr(0),
		})

		require.NoError(t, err)
		assert.Zero(t, cert.Price)
		repo.AssertExpectations(t)
	})

	t.Run("reconciler failure aborts before persisting", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		dbErr := errors.New("connection reset")
		reconciler.On("Reconcile", mock.Anything, []string{"extreme"}).
			Return(nil, dbErr).Once()

		cert, err := service.Create(context.Background(), &CreateRequest{
			Name:     "Skydiving",
			Duration: 30,
			Price:    floatPtr(199.99),
			Tags:     []tags.TagRequest{{Name: "extreme"}},
		})

		require.Error(t, err)
		assert.Nil(t, cert)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		reconciler.AssertExpectations(t)
	})
}

// ========================================
// UPDATE TESTS
// ========================================

func TestCertificateUpdate(t *testing.T) {
	t.Run("patches only supplied fields", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		existing := createTestCertificate(10)
		originalCreateDate := existing.CreateDate
		originalUpdateDate := existing.LastUpdateDate

		repo.On("GetByID", mock.Anything, int64(10)).Return(existing, nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, false).Return(nil).Once()

		cert, err := service.Update(context.Background(), 10, &UpdateRequest{
			Price: floatPtr(149.50),
		})

		require.NoError(t, err)
		assert.Equal(t, 149.50, cert.Price)
		assert.Equal(t, "Skydiving", cert.Name)
		assert.Equal(t, "Tandem jump from 4000m", cert.Description)
		assert.Equal(t, 30, cert.Duration)
		assert.Equal(t, []tags.Tag{{ID: 1, Name: "extreme"}}, cert.Tags)
		assert.Equal(t, originalCreateDate, cert.CreateDate)
		assert.True(t, cert.LastUpdateDate.After(originalUpdateDate))
		reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("supplied tag list replaces the tag set", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		existing := createTestCertificate(10)

		repo.On("GetByID", mock.Anything, int64(10)).Return(existing, nil).Once()
		reconciler.On("Reconcile", mock.Anything, []string{"summer", "beach"}).
			Return([]tags.Tag{{ID: 5, Name: "summer"}, {ID: 6, Name: "beach"}}, nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, true).Return(nil).Once()

		newTags := []tags.TagRequest{{Name: "summer"}, {Name: "beach"}}
		cert, err := service.Update(context.Background(), 10, &UpdateRequest{Tags: &newTags})

		require.NoError(t, err)
		assert.Equal(t, []tags.Tag{{ID: 5, Name: "summer"}, {ID: 6, Name: "beach"}}, cert.Tags)
		repo.AssertExpectations(t)
		reconciler.AssertExpectations(t)
	})

	t.Run("empty tag list detaches everything", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		existing := createTestCertificate(10)

		repo.On("GetByID", mock.Anything, int64(10)).Return(existing, nil).Once()
		reconciler.On("Reconcile", mock.Anything, []string{}).
			Return([]tags.Tag{}, nil).Once()
		repo.On("Update", mock.Anything, mock.Anything, true).Return(nil).Once()

		empty := []tags.TagRequest{}
		cert, err := service.Update(context.Background(), 10, &UpdateRequest{Tags: &empty})

		require.NoError(t, err)
		assert.Empty(t, cert.Tags)
		repo.AssertExpectations(t)
	})

	t.Run("missing id returns not found", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		repo.On("GetByID", mock.Anything, int64(404)).Return(nil, pgx.ErrNoRows).Once()

		cert, err := service.Update(context.Background(), 404, &UpdateRequest{Name: strPtr("x")})

		require.Error(t, err)
		assert.Nil(t, cert)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Contains(t, appErr.Message, "404")
		repo.AssertExpectations(t)
	})

	t.Run("invalid patch values rejected before any lookup", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		cert, err := service.Update(context.Background(), 10, &UpdateRequest{
			Duration: intPtr(-5),
		})

		require.Error(t, err)
		assert.Nil(t, cert)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

// ========================================
// RECONCILE RETRY TESTS
// ========================================

func TestReconcileWithRetry(t *testing.T) {
	t.Run("lost insert race succeeds on retry", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		reconciler.On("Reconcile", mock.Anything, []string{"new"}).
			Return(nil, tags.ErrDuplicateName).Once()
		reconciler.On("Reconcile", mock.Anything, []string{"new"}).
			Return([]tags.Tag{{ID: 8, Name: "new"}}, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		cert, err := service.Create(context.Background(), &CreateRequest{
			Name:     "Surfing",
			Duration: 14,
			Price:    floatPtr(80),
			Tags:     []tags.TagRequest{{Name: "new"}},
		})

		require.NoError(t, err)
		assert.Equal(t, []tags.Tag{{ID: 8, Name: "new"}}, cert.Tags)
		reconciler.AssertNumberOfCalls(t, "Reconcile", 2)
		repo.AssertExpectations(t)
	})

	t.Run("second duplicate failure becomes internal error", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		reconciler.On("Reconcile", mock.Anything, []string{"new"}).
			Return(nil, tags.ErrDuplicateName).Twice()

		cert, err := service.Create(context.Background(), &CreateRequest{
			Name:     "Surfing",
			Duration: 14,
			Price:    floatPtr(80),
			Tags:     []tags.TagRequest{{Name: "new"}},
		})

		require.Error(t, err)
		assert.Nil(t, cert)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		reconciler.AssertNumberOfCalls(t, "Reconcile", 2)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non-duplicate error is not retried", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		reconciler := new(mockReconciler)
		service := NewService(repo, reconciler)

		dbErr := errors.New("connection reset")
		reconciler.On("Reconcile", mock.Anything, []string{"new"}).
			Return(nil, dbErr).Once()

		_, err := service.Create(context.Background(), &CreateRequest{
			Name:     "Surfing",
			Duration: 14,
			Price:    floatPtr(80),
			Tags:     []tags.TagRequest{{Name: "new"}},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		reconciler.AssertNumberOfCalls(t, "Reconcile", 1)
	})
}

// ========================================
// FIND / DELETE / LIST TESTS
// ========================================

func TestCertificateFind(t *testing.T) {
	t.Run("missing id returns not found", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		service := NewService(repo, new(mockReconciler))

		repo.On("GetByID", mock.Anything, int64(77)).Return(nil, pgx.ErrNoRows).Once()

		cert, err := service.Find(context.Background(), 77)

		require.Error(t, err)
		assert.Nil(t, cert)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		repo.AssertExpectations(t)
	})
}

func TestCertificateDelete(t *testing.T) {
	t.Run("missing id returns not found", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		service := NewService(repo, new(mockReconciler))

		repo.On("Delete", mock.Anything, int64(77)).Return(pgx.ErrNoRows).Once()

		err := service.Delete(context.Background(), 77)

		require.Error(t, err)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		repo.AssertExpectations(t)
	})

	t.Run("certificate with orders returns conflict", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		service := NewService(repo, new(mockReconciler))

		repo.On("Delete", mock.Anything, int64(77)).Return(ErrHasOrders).Once()

		err := service.Delete(context.Background(), 77)

		require.Error(t, err)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.Contains(t, appErr.Message, "77")
		repo.AssertExpectations(t)
	})
}

func TestCertificateFindAll(t *testing.T) {
	t.Run("nil page becomes empty slice", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		service := NewService(repo, new(mockReconciler))

		params := pagination.Params{Page: 99, Size: 20}
		repo.On("List", mock.Anything, ListFilters{}, params).
			Return(nil, int64(3), nil).Once()

		result, total, err := service.FindAll(context.Background(), ListFilters{}, params)

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.Equal(t, int64(3), total)
		repo.AssertExpectations(t)
	})

	t.Run("invalid sort token from repository propagates", func(t *testing.T) {
		repo := new(mockCertificateRepository)
		service := NewService(repo, new(mockReconciler))

		filters := ListFilters{SortByDate: strPtr("descc")}
		params := pagination.Params{Page: 0, Size: 20}
		badErr := common.NewBadRequestError(`invalid sort order: "descc"`, nil)
		repo.On("List", mock.Anything, filters, params).
			Return(nil, int64(0), badErr).Once()

		_, _, err := service.FindAll(context.Background(), filters, params)

		require.Error(t, err)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		repo.AssertExpectations(t)
	})
}
