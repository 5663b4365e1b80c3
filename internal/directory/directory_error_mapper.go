package directory

import (
	"errors"

	directoryerrors "karma-manager/internal/directory/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return directoryerrors.ErrPersonNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// invalid_text_representation: a non-uuid id reached a uuid column
		if pgErr.Code == "22P02" {
			return directoryerrors.ErrInvalidPersonID
		}
	}

	return err
}
