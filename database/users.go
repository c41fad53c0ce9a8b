/*
	Database user operations
*/
package database

import (
	"context"
	"strings"

	"github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/noisersup/files-manager-api/models"
)

/*
	Registers new user
	!!! remember to provide the digest from HashPassword as password argument !!!
*/
func (db *Database) NewUser(email, hashedPassword string) (*models.User, error) {
	var id uuid.UUID

	sqlFormula := "INSERT INTO users (email, password) VALUES ($1,$2) RETURNING id;"
	err := crdbpgx.ExecuteTx(context.Background(), db.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(context.Background(), sqlFormula, email, hashedPassword).Scan(&id)
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, UserExists
		}
		return nil, err
	}

	return &models.User{Id: id, Email: email}, nil
}

// Finds the user holding both the email and the password digest.
// A wrong password and an unknown email are the same UserNotFound.
func (db *Database) GetUserByCreds(email, hashedPassword string) (*models.User, error) {
	u := models.User{Email: email}

	sqlFormula := "SELECT id FROM users WHERE email=$1 AND password=$2;"
	err := db.pool.QueryRow(context.Background(), sqlFormula, email, hashedPassword).Scan(&u.Id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, UserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (db *Database) GetUser(id uuid.UUID) (*models.User, error) {
	u := models.User{Id: id}

	err := db.pool.QueryRow(context.Background(), "SELECT email FROM users WHERE id=$1;", id).Scan(&u.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, UserNotFound
		}
		return nil, err
	}

	return &u, nil
}
