package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Cells pandas would have loaded as NaN come through as NULL.
func isNullCell(s string) bool {
	return s == "" || s == "NA"
}

// csvTable is a fully-read CSV: header plus raw string cells.
type csvTable struct {
	columns []string
	rows    [][]string
}

func readCSV(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("CSV not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no header row: %s", path)
	}

	t := &csvTable{columns: records[0]}
	for _, rec := range records[1:] {
		// Pad short rows so every row matches the header width.
		if len(rec) < len(t.columns) {
			padded := make([]string, len(t.columns))
			copy(padded, rec)
			rec = padded
		}
		t.rows = append(t.rows, rec[:len(t.columns)])
	}
	return t, nil
}

// isIndexArtifact reports whether column i looks like an exported positional
// index: an unnamed header whose values are exactly 0..n-1.
func (t *csvTable) isIndexArtifact(i int) bool {
	name := strings.ToLower(t.columns[i])
	if name != "" && !strings.HasPrefix(name, "unnamed") {
		return false
	}
	for j, row := range t.rows {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil || v != float64(j) {
			return false
		}
	}
	return true
}

// pruneIndexColumns drops positional-index artifacts in place. Unnamed
// columns with any other values are kept as-is.
func (t *csvTable) pruneIndexColumns() {
	for i := len(t.columns) - 1; i >= 0; i-- {
		if !t.isIndexArtifact(i) {
			continue
		}
		t.columns = append(t.columns[:i], t.columns[i+1:]...)
		for j, row := range t.rows {
			t.rows[j] = append(row[:i], row[i+1:]...)
		}
	}
}

func (t *csvTable) hasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// addRowID prepends a dense 1..n identifier column. A pre-existing column of
// the same name passes through untouched; the caller gets told so it can warn
// about possible collisions with the assigned sequence.
func (t *csvTable) addRowID(name string) (assigned bool) {
	if t.hasColumn(name) {
		return false
	}
	t.columns = append([]string{name}, t.columns...)
	for i, row := range t.rows {
		t.rows[i] = append([]string{strconv.Itoa(i + 1)}, row...)
	}
	return true
}

// inferColumnTypes picks a SQLite type per column from the values: all
// integers -> INTEGER, all numeric -> REAL, otherwise TEXT. Null cells are
// ignored; an all-null column lands on TEXT.
func (t *csvTable) inferColumnTypes() []string {
	types := make([]string, len(t.columns))
	for i := range t.columns {
		allInt, allFloat, seen := true, true, false
		for _, row := range t.rows {
			cell := row[i]
			if isNullCell(cell) {
				continue
			}
			seen = true
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allFloat = false
				break
			}
		}
		switch {
		case seen && allInt:
			types[i] = "INTEGER"
		case seen && allFloat:
			types[i] = "REAL"
		default:
			types[i] = "TEXT"
		}
	}
	return types
}

// bindValue converts a raw cell to the driver value matching the column's
// inferred type, falling back to the raw string when it doesn't parse.
func bindValue(cell, colType string) any {
	if isNullCell(cell) {
		return nil
	}
	switch colType {
	case "INTEGER":
		if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return v
		}
	case "REAL":
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v
		}
	}
	return cell
}

// loadCSV ingests the CSV at csvPath into table, returning the destination
// table's total row count after the write (not just the rows written, so
// append mode is observable).
func loadCSV(db *sql.DB, csvPath, table, idCol, ifExists string) (int, error) {
	t, err := readCSV(csvPath)
	if err != nil {
		return 0, err
	}
	t.pruneIndexColumns()
	if !t.addRowID(idCol) {
		fmt.Printf("⚠️  Source already has a %q column; keeping its values (assigned ids may collide)\n", idCol)
	}

	exists, err := tableExists(db, table)
	if err != nil {
		return 0, err
	}

	switch ifExists {
	case "fail":
		if exists {
			return 0, fmt.Errorf("table %s already exists", table)
		}
	case "replace":
		if _, err := db.Exec("DROP TABLE IF EXISTS " + quoteIdent(table)); err != nil {
			return 0, err
		}
		exists = false
	case "append":
		// Insert into the existing schema; create it if this is the first load.
	default:
		return 0, fmt.Errorf("invalid --if-exists value %q (want fail, replace or append)", ifExists)
	}

	types := t.inferColumnTypes()
	if !exists {
		defs := make([]string, len(t.columns))
		for i, col := range t.columns {
			// Only the fail/replace paths promise the key constraint;
			// append keeps the identifier as a plain column so repeated
			// appends can accumulate rows.
			if col == idCol && types[i] == "INTEGER" && ifExists != "append" {
				defs[i] = quoteIdent(col) + " INTEGER PRIMARY KEY"
			} else {
				defs[i] = quoteIdent(col) + " " + types[i]
			}
		}
		ddl := "CREATE TABLE " + quoteIdent(table) + " (" + strings.Join(defs, ", ") + ")"
		if _, err := db.Exec(ddl); err != nil {
			return 0, err
		}
	}

	if err := insertRows(db, table, t, types); err != nil {
		return 0, err
	}

	if ifExists != "append" {
		if err := ensurePrimaryKey(db, table, idCol); err != nil {
			return 0, err
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(table)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func insertRows(db *sql.DB, table string, t *csvTable, types []string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	quoted := make([]string, len(t.columns))
	marks := make([]string, len(t.columns))
	for i, col := range t.columns {
		quoted[i] = quoteIdent(col)
		marks[i] = "?"
	}
	stmt, err := tx.Prepare("INSERT INTO " + quoteIdent(table) +
		" (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")")
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(t.columns))
	for _, row := range t.rows {
		for i, cell := range row {
			args[i] = bindValue(cell, types[i])
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ensurePrimaryKey verifies idCol is the table's primary key and rebuilds the
// table (create new, copy, swap) when it is not. SQLite cannot add a primary
// key to an existing table, so the rebuild is the only repair path.
func ensurePrimaryKey(db *sql.DB, table, idCol string) error {
	rows, err := db.Query("PRAGMA table_info(" + quoteIdent(table) + ")")
	if err != nil {
		return err
	}
	type colInfo struct {
		name, ctype string
		pk          int
	}
	var cols []colInfo
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, ctype      string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		cols = append(cols, colInfo{name: name, ctype: ctype, pk: pk})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, c := range cols {
		if c.name == idCol && c.pk > 0 {
			return nil
		}
	}

	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		ctype := c.ctype
		if ctype == "" {
			ctype = "TEXT"
		}
		if c.name == idCol {
			defs[i] = quoteIdent(c.name) + " INTEGER PRIMARY KEY"
		} else {
			defs[i] = quoteIdent(c.name) + " " + ctype
		}
		names[i] = quoteIdent(c.name)
	}
	tmp := table + "__tmp_rebuild"
	colList := strings.Join(names, ", ")

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec("CREATE TABLE " + quoteIdent(tmp) + " (" + strings.Join(defs, ", ") + ")"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO " + quoteIdent(tmp) + " (" + colList + ") SELECT " + colList + " FROM " + quoteIdent(table)); err != nil {
		return err
	}
	if _, err := tx.Exec("DROP TABLE " + quoteIdent(table)); err != nil {
		return err
	}
	if _, err := tx.Exec("ALTER TABLE " + quoteIdent(tmp) + " RENAME TO " + quoteIdent(table)); err != nil {
		return err
	}
	return tx.Commit()
}
