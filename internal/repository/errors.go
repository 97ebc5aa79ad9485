package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateEmail is returned by BrokersRepository.Create when the unique
// email index rejects the insert.
var ErrDuplicateEmail = errors.New("email already registered")

// ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
