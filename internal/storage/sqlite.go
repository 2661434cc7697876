package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/user/aktdoclix/internal/model"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS akten (
		id INTEGER PRIMARY KEY,
		signatur TEXT,
		titel TEXT,
		zeitraum TEXT,
		typ TEXT,
		anzahl INTEGER,
		kategorie TEXT,
		unterkat TEXT,
		zustand TEXT,
		schlagworte TEXT,
		notizen TEXT,
		pfad TEXT,
		lagerort TEXT
	)
`

// recordColumns lists the akten columns in raw table order.
const recordColumns = `id, signatur, titel, zeitraum, typ, anzahl, kategorie, unterkat, zustand, schlagworte, notizen, pfad, lagerort`

// searchClause ORs the eight searchable predicates. zeitraum is matched
// against the lowered term without lowering the column itself.
const searchClause = ` WHERE (
	lower(titel) LIKE ? OR
	lower(signatur) LIKE ? OR
	zeitraum LIKE ? OR
	lower(notizen) LIKE ? OR
	lower(lagerort) LIKE ? OR
	lower(unterkat) LIKE ? OR
	lower(zustand) LIKE ? OR
	lower(typ) LIKE ?
)`

// RecordStore persists archive records in the single akten table.
type RecordStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open backs up an existing store file, opens it and ensures the schema.
// A failed backup is logged and otherwise ignored.
func Open(dbPath, backupPath string, logger *zap.Logger) (*RecordStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if backupPath != "" {
		if copied, err := BackupFile(dbPath, backupPath); err != nil {
			logger.Debug("store backup failed", zap.String("backup", backupPath), zap.Error(err))
		} else if copied {
			logger.Debug("store backed up", zap.String("backup", backupPath))
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, &model.StorageError{Op: "open", Err: err}
	}
	// One connection gives the sequential single-writer access the store assumes.
	db.SetMaxOpenConns(1)

	store := NewRecordStore(db, logger)
	if err := store.Init(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("record store opened", zap.String("path", dbPath))
	return store, nil
}

// NewRecordStore wraps an already opened database handle.
func NewRecordStore(db *sql.DB, logger *zap.Logger) *RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore{db: db, logger: logger}
}

// Init creates the akten table if it does not exist. It is idempotent.
func (s *RecordStore) Init() error {
	_, err := s.exec("init", schemaSQL)
	return err
}

// Close closes the database connection.
func (s *RecordStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// exec runs a write statement. Every failure is wrapped in a StorageError.
func (s *RecordStore) exec(op, query string, args ...any) (sql.Result, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		s.logger.Warn("statement failed", zap.String("op", op), zap.Error(err))
		return nil, &model.StorageError{Op: op, Err: err}
	}
	return res, nil
}

// query runs a read statement and collects all rows into records.
// On failure it returns an empty, non-nil slice and a StorageError.
func (s *RecordStore) query(op, query string, args ...any) ([]model.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logger.Warn("query failed", zap.String("op", op), zap.Error(err))
		return []model.Record{}, &model.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return []model.Record{}, &model.StorageError{Op: op, Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return []model.Record{}, &model.StorageError{Op: op, Err: err}
	}
	return records, nil
}

// Search returns records matching term, newest id first.
// An empty term returns every record.
func (s *RecordStore) Search(term string) ([]model.Record, error) {
	term = strings.ToLower(strings.TrimSpace(term))

	q := "SELECT " + recordColumns + " FROM akten"
	var args []any
	if term != "" {
		q += searchClause
		wildcard := "%" + term + "%"
		for i := 0; i < 8; i++ {
			args = append(args, wildcard)
		}
	}
	q += " ORDER BY id DESC"

	return s.query("search", q, args...)
}

// Get returns the record with the given id.
func (s *RecordStore) Get(id int64) (*model.Record, error) {
	records, err := s.query("get", "SELECT "+recordColumns+" FROM akten WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, model.ErrRecordNotFound
	}
	return &records[0], nil
}

// Exists reports whether a record with the id is stored.
func (s *RecordStore) Exists(id int64) (bool, error) {
	_, err := s.Get(id)
	if errors.Is(err, model.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert stores a new record and returns its id. On failure the id is 0.
// A zero rec.ID lets the store assign the next id.
func (s *RecordStore) Insert(rec model.Record) (int64, error) {
	var id any
	if rec.ID != 0 {
		id = rec.ID
	}

	res, err := s.exec("insert", `
		INSERT INTO akten (id, signatur, titel, zeitraum, typ, anzahl, kategorie, unterkat, zustand, schlagworte, notizen, pfad, lagerort)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, rec.Signature, rec.Title, rec.DateRange, rec.Type, rec.Count, rec.Category,
		rec.Subcategory, rec.Condition, rec.Keywords, rec.Notes, rec.Path, rec.Location)
	if err != nil {
		return 0, err
	}

	newID, err := res.LastInsertId()
	if err != nil {
		return 0, &model.StorageError{Op: "insert", Err: err}
	}
	return newID, nil
}

// Update rewrites the patched fields of the record with the given id.
func (s *RecordStore) Update(id int64, patch model.RecordPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.ID != nil {
		add("id", *patch.ID)
	}
	if patch.Signature != nil {
		add("signatur", *patch.Signature)
	}
	if patch.Title != nil {
		add("titel", *patch.Title)
	}
	if patch.DateRange != nil {
		add("zeitraum", *patch.DateRange)
	}
	if patch.Location != nil {
		add("lagerort", *patch.Location)
	}
	if patch.Subcategory != nil {
		add("unterkat", *patch.Subcategory)
	}
	if patch.Condition != nil {
		add("zustand", *patch.Condition)
	}
	if patch.Count != nil {
		add("anzahl", *patch.Count)
	}
	if patch.Notes != nil {
		add("notizen", *patch.Notes)
	}
	if patch.Path != nil {
		add("pfad", *patch.Path)
	}
	args = append(args, id)

	res, err := s.exec("update", "UPDATE akten SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	return checkAffected(res, "update")
}

// Delete removes the record row. Folders on disk are not touched.
func (s *RecordStore) Delete(id int64) error {
	res, err := s.exec("delete", "DELETE FROM akten WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkAffected(res, "delete")
}

// WidestSignature returns the stored signature starting with prefix that is
// longest, ties broken by the greatest string value.
func (s *RecordStore) WidestSignature(prefix string) (string, bool, error) {
	rows, err := s.db.Query(`
		SELECT signatur FROM akten
		WHERE substr(signatur, 1, length(?)) = ?
		ORDER BY length(signatur) DESC, signatur DESC
		LIMIT 1
	`, prefix, prefix)
	if err != nil {
		s.logger.Warn("query failed", zap.String("op", "next signature"), zap.Error(err))
		return "", false, &model.StorageError{Op: "next signature", Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, &model.StorageError{Op: "next signature", Err: err}
		}
		return "", false, nil
	}
	var sig sql.NullString
	if err := rows.Scan(&sig); err != nil {
		return "", false, &model.StorageError{Op: "next signature", Err: err}
	}
	return sig.String, true, nil
}

// ByCategory returns the records of a category except excludeID, in store order.
func (s *RecordStore) ByCategory(category string, excludeID int64) ([]model.Record, error) {
	return s.query("related",
		"SELECT "+recordColumns+" FROM akten WHERE kategorie = ? AND id != ?",
		category, excludeID)
}

// All returns every record in store order, optionally limited to one category.
func (s *RecordStore) All(category string) ([]model.Record, error) {
	if category == "" {
		return s.query("export", "SELECT "+recordColumns+" FROM akten")
	}
	return s.query("export", "SELECT "+recordColumns+" FROM akten WHERE kategorie = ?", category)
}

func checkAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return &model.StorageError{Op: op, Err: err}
	}
	if affected == 0 {
		return model.ErrRecordNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (model.Record, error) {
	var (
		rec                                                  model.Record
		count                                                any
		sig, title, dateRange, typ, category, sub, condition sql.NullString
		keywords, notes, path, location                      sql.NullString
	)
	err := row.Scan(&rec.ID, &sig, &title, &dateRange, &typ, &count, &category,
		&sub, &condition, &keywords, &notes, &path, &location)
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.Signature = sig.String
	rec.Title = title.String
	rec.DateRange = dateRange.String
	rec.Type = typ.String
	rec.Count = countValue(count)
	rec.Category = category.String
	rec.Subcategory = sub.String
	rec.Condition = condition.String
	rec.Keywords = keywords.String
	rec.Notes = notes.String
	rec.Path = path.String
	rec.Location = location.String
	return rec, nil
}

// countValue reads anzahl leniently: rows written by older versions may hold
// text. Anything that is not a positive number counts as 1.
func countValue(v any) int {
	var n int64
	switch val := v.(type) {
	case int64:
		n = val
	case float64:
		n = int64(val)
	case []byte:
		n, _ = strconv.ParseInt(strings.TrimSpace(string(val)), 10, 64)
	case string:
		n, _ = strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	}
	if n < 1 {
		return 1
	}
	return int(n)
}
