/*
	Database file metadata operations
*/
package database

import (
	"context"
	"errors"

	"github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/noisersup/files-manager-api/models"
)

const fileColumns = "id, user_id, name, type, is_public, parent_id, local_path"

// Adds file entry to database.
// The returned copy carries the id assigned by the database.
func (db *Database) NewFile(f models.File) (*models.File, error) {
	if f.Name == "" {
		return nil, errors.New("NewFile: no name provided")
	}

	sqlFormula := "INSERT INTO files (user_id, name, type, is_public, parent_id, local_path) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;"
	err := crdbpgx.ExecuteTx(context.Background(), db.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(context.Background(), sqlFormula,
			f.UserId, f.Name, f.Type, f.IsPublic, f.ParentId, f.LocalPath).Scan(&f.Id)
	})
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// Gets metadata of specified file owned by given user
func (db *Database) GetFile(id, userId uuid.UUID) (*models.File, error) {
	sqlFormula := "SELECT " + fileColumns + " FROM files WHERE id = $1 AND user_id = $2;"
	return db.scanFile(db.pool.QueryRow(context.Background(), sqlFormula, id, userId))
}

// Gets metadata of specified file regardless of its owner
// WARNING!!! Remember to check ownership or IsPublic before
// exposing the result to an user!!!
func (db *Database) FindFile(id uuid.UUID) (*models.File, error) {
	sqlFormula := "SELECT " + fileColumns + " FROM files WHERE id = $1;"
	return db.scanFile(db.pool.QueryRow(context.Background(), sqlFormula, id))
}

// Lists files of given user under given parent,
// windowed to ListLimit entries with offset page*ListLimit
func (db *Database) ListFiles(userId, parentId uuid.UUID, page int) ([]models.File, error) {
	if page < 0 {
		page = 0
	}

	files := []models.File{}
	// insertion order keeps page windows stable between requests
	sqlFormula := "SELECT " + fileColumns + " FROM files WHERE user_id = $1 AND parent_id = $2 ORDER BY created_at, id LIMIT $3 OFFSET $4;"
	rows, err := db.pool.Query(context.Background(), sqlFormula, userId, parentId, ListLimit, page*ListLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		f := models.File{}
		if err := rows.Scan(&f.Id, &f.UserId, &f.Name, &f.Type, &f.IsPublic, &f.ParentId, &f.LocalPath); err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// Flips the is_public flag on a file owned by given user
func (db *Database) SetPublic(id, userId uuid.UUID, public bool) (*models.File, error) {
	var f *models.File

	sqlFormula := "UPDATE files SET is_public = $1 WHERE id = $2 AND user_id = $3 RETURNING " + fileColumns + ";"
	err := crdbpgx.ExecuteTx(context.Background(), db.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var txErr error
		f, txErr = db.scanFile(tx.QueryRow(context.Background(), sqlFormula, public, id, userId))
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (db *Database) scanFile(row pgx.Row) (*models.File, error) {
	f := models.File{}
	err := row.Scan(&f.Id, &f.UserId, &f.Name, &f.Type, &f.IsPublic, &f.ParentId, &f.LocalPath)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, FileNotFound
		}
		return nil, err
	}
	return &f, nil
}
