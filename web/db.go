package web

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/oarkflow/date"
	"github.com/oarkflow/gopool"
	"github.com/oarkflow/log"
	"github.com/oarkflow/metadata"
	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/dbresolver"

	"github.com/oarkflow/wordmap"
)

// ExtractFromDB streams (word, column) rows out of a database table and loads
// the merged word-to-columns mapping into the engine registered under the
// request's index key. Rows sharing a word are merged before loading because
// the forward index replaces a word's columns on every add.
func ExtractFromDB(db metadata.DataSource, dbConfig Database, start time.Time) error {
	query, err := extractionQuery(dbConfig)
	if err != nil {
		return err
	}
	engine := wordmap.GetOrSetEngine(dbConfig.IndexKey)
	wordField, columnField := extractionFields(dbConfig)
	sqDB := db.Client()
	switch d := sqDB.(type) {
	case dbresolver.DBResolver:
		sqDB, _ := d.UseDefault()
		mappings := make(map[string][]string)
		totalRows := 0
		err = squealx.SelectEach(sqDB, func(doc map[string]any) error {
			mergeRow(mappings, doc, wordField, columnField)
			totalRows++
			return nil
		}, query)
		if err != nil {
			return err
		}
		if err := loadWithPool(engine, mappings); err != nil {
			return err
		}
		log.Info().Str("latency", time.Since(start).String()).Int("total_rows", totalRows).Int("total_words", len(mappings)).Msg("Extracted mappings...")
		return nil
	}

	fromDB, err := db.GetRawCollection(query)
	if err != nil {
		return err
	}
	mappings := make(map[string][]string)
	for _, row := range fromDB {
		mergeRow(mappings, row, wordField, columnField)
	}
	totalRows := len(fromDB)
	fromDB = fromDB[:0]
	if err := loadWithPool(engine, mappings); err != nil {
		return err
	}
	db.Close()
	log.Info().Str("latency", time.Since(start).String()).Int("total_rows", totalRows).Int("total_words", len(mappings)).Msg("Extracted mappings...")
	return nil
}

// ExtractFromDBWithPaginate is the batched variant for tables too large for a
// single select.
func ExtractFromDBWithPaginate(db metadata.DataSource, dbConfig Database, start time.Time) error {
	if dbConfig.BatchSize == 0 {
		dbConfig.BatchSize = 20000
	}
	query, err := extractionQuery(dbConfig)
	if err != nil {
		return err
	}
	query = strings.Split(query, "LIMIT")[0]
	engine := wordmap.GetOrSetEngine(dbConfig.IndexKey)
	wordField, columnField := extractionFields(dbConfig)
	mappings := make(map[string][]string)
	totalRows := 0
	last := false
	paging := &squealx.Paging{
		Limit: dbConfig.BatchSize,
		Page:  1,
	}
	for !last {
		resp := db.GetRawPaginatedCollection(query, *paging)
		if resp.Error != nil {
			return resp.Error
		}
		switch fromDB := resp.Items.(type) {
		case []map[string]any:
			if len(fromDB) == 0 {
				last = true
				break
			}
			for _, row := range fromDB {
				mergeRow(mappings, row, wordField, columnField)
				totalRows++
			}
		case *[]map[string]any:
			if fromDB == nil || len(*fromDB) == 0 {
				last = true
				break
			}
			for _, row := range *fromDB {
				mergeRow(mappings, row, wordField, columnField)
				totalRows++
			}
		default:
			return fmt.Errorf("unexpected page type %s", reflect.TypeOf(resp.Items))
		}
		paging.Page++
	}
	if err := loadWithPool(engine, mappings); err != nil {
		return err
	}
	db.Close()
	log.Info().Str("latency", time.Since(start).String()).Int("total_rows", totalRows).Int("total_words", len(mappings)).Msg("Extracted mappings...")
	return nil
}

func extractionQuery(dbConfig Database) (string, error) {
	wordField, columnField := extractionFields(dbConfig)
	query := fmt.Sprintf("SELECT %s, %s FROM %s", wordField, columnField, dbConfig.TableName)
	if dbConfig.Query != "" {
		query = strings.TrimSuffix(strings.TrimSpace(dbConfig.Query), ";")
	}
	if dbConfig.ModifiedSince != "" && dbConfig.ModifiedField != "" {
		since, err := date.Parse(dbConfig.ModifiedSince)
		if err != nil {
			return "", fmt.Errorf("bad modified_since %q: %w", dbConfig.ModifiedSince, err)
		}
		clause := "WHERE"
		if strings.Contains(strings.ToUpper(query), "WHERE") {
			clause = "AND"
		}
		query = fmt.Sprintf("%s %s %s >= '%s'", query, clause, dbConfig.ModifiedField, since.Format(time.DateOnly))
	}
	return query, nil
}

func extractionFields(dbConfig Database) (string, string) {
	wordField := dbConfig.WordField
	if wordField == "" {
		wordField = "word"
	}
	columnField := dbConfig.ColumnField
	if columnField == "" {
		columnField = "column_id"
	}
	return wordField, columnField
}

// mergeRow folds one row into the accumulated mapping. The column cell may
// hold a single identifier or a comma separated list.
func mergeRow(mappings map[string][]string, row map[string]any, wordField, columnField string) {
	word := strings.TrimSpace(stringOf(row[wordField]))
	if word == "" {
		return
	}
	for _, column := range strings.Split(stringOf(row[columnField]), ",") {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		mappings[word] = append(mappings[word], column)
	}
}

func loadWithPool(engine *wordmap.Engine, mappings map[string][]string) error {
	if len(mappings) == 0 {
		return nil
	}
	noOfWorker := runtime.NumCPU() - 1
	if noOfWorker == 0 {
		noOfWorker = 1
	}
	pool, err := gopool.NewPoolSimple(noOfWorker, func(job gopool.Job[Mapping], workerID int) error {
		engine.AddMapping(job.Payload.Word, job.Payload.Columns)
		return nil
	})
	if err != nil {
		return err
	}
	for word, columns := range mappings {
		pool.Submit(Mapping{Word: word, Columns: columns})
	}
	pool.StopAndWait()
	return nil
}

// stringOf coerces a database cell into its string form without fmt's quoting
// of byte slices.
func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	default:
		return fmt.Sprint(v)
	}
}

func extractionFailed(err error) {
	if err != nil {
		log.Error().Err(err).Msg("Extraction failed")
	}
}
