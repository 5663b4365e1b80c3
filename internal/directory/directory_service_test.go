package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"karma-manager/internal/directory"
	directoryerrors "karma-manager/internal/directory/errors"
	directoryMock "karma-manager/internal/directory/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service   directory.Service
	repo      *directoryMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	dbRedis, redisMock := redismock.NewClientMock()
	repo := directoryMock.NewMockRepository(ctrl)

	return &serviceDeps{
		service:   directory.NewService(repo, dbRedis),
		repo:      repo,
		redismock: redisMock,
	}
}

func TestDirectoryService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	companyID := uuid.New()
	personID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID.String(), directory.KindStaff, personID.String()).
			Return(&directory.Person{ID: personID, CompanyID: companyID, Kind: directory.KindStaff, Name: "Rina", Label: "EMP-7"}, nil)

		resp, err := deps.service.GetByID(ctx, companyID.String(), directory.KindStaff, personID.String())
		require.NoError(t, err)
		assert.Equal(t, personID.String(), resp.ID)
		assert.Equal(t, "Rina", resp.Name)
		assert.Equal(t, "EMP-7", resp.Label)
	})

	t.Run("Not Found", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID.String(), directory.KindStudent, personID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, companyID.String(), directory.KindStudent, personID.String())
		assert.ErrorIs(t, err, directoryerrors.ErrPersonNotFound)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, companyID.String(), directory.KindStaff, "not-a-uuid")
		assert.ErrorIs(t, err, directoryerrors.ErrInvalidPersonID)
	})

	t.Run("Invalid Kind", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, companyID.String(), "guest", personID.String())
		assert.ErrorIs(t, err, directoryerrors.ErrInvalidKind)
	})
}

func TestDirectoryService_GetOptions(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	t.Run("Hit Cache", func(t *testing.T) {
		companyID := uuid.New().String()
		cached := []directory.PersonResponse{{ID: uuid.New().String(), Name: "Caca", Kind: directory.KindStaff}}
		raw, _ := json.Marshal(cached)

		deps.redismock.ExpectGet(directory.OptionsKey(companyID, directory.KindStaff)).SetVal(string(raw))
		deps.repo.EXPECT().FindAllByCompany(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		resp, err := deps.service.GetOptions(ctx, companyID, directory.KindStaff)
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Caca", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("Miss Cache", func(t *testing.T) {
		companyID := uuid.New()
		key := directory.OptionsKey(companyID.String(), directory.KindStudent)
		people := []directory.Person{{ID: uuid.New(), CompanyID: companyID, Kind: directory.KindStudent, Name: "Deni", Label: "7B"}}

		want := []directory.PersonResponse{{
			ID:        people[0].ID.String(),
			CompanyID: companyID.String(),
			Kind:      directory.KindStudent,
			Name:      "Deni",
			Label:     "7B",
		}}
		raw, _ := json.Marshal(want)

		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindAllByCompany(gomock.Any(), companyID.String(), directory.KindStudent).Return(people, nil)
		deps.redismock.ExpectSet(key, raw, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, companyID.String(), directory.KindStudent)
		require.NoError(t, err)
		assert.Equal(t, want, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		companyID := uuid.New().String()
		deps.redismock.ExpectGet(directory.OptionsKey(companyID, directory.KindStaff)).RedisNil()
		deps.repo.EXPECT().FindAllByCompany(gomock.Any(), companyID, directory.KindStaff).Return(nil, errors.New("database connection lost"))

		resp, err := deps.service.GetOptions(ctx, companyID, directory.KindStaff)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDirectoryService_Invalidate(t *testing.T) {
	deps := setupServiceTest(t)
	companyID := uuid.New().String()

	deps.redismock.ExpectDel(directory.OptionsKey(companyID, directory.KindStaff)).SetVal(1)
	assert.NoError(t, deps.service.Invalidate(context.Background(), companyID, directory.KindStaff))
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}
