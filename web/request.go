package web

type Query struct {
	Query           string  `json:"q" query:"q" validate:"required"`
	FuzzyThreshold  float64 `json:"t" query:"t"`
	MaxResults      int     `json:"s" query:"s"`
	MaxEditDistance int     `json:"d" query:"d"`
	NoSuggestions   bool    `json:"n" query:"n"`
}

type BatchQuery struct {
	Queries         []string `json:"queries"`
	FuzzyThreshold  float64  `json:"fuzzy_threshold"`
	MaxResults      int      `json:"max_results"`
	MaxEditDistance int      `json:"max_edit_distance"`
	NoSuggestions   bool     `json:"no_suggestions"`
}

type Mapping struct {
	Word    string   `json:"word"`
	Columns []string `json:"columns"`
}

type LoadRequest struct {
	Mappings map[string][]string `json:"mappings"`
	File     string              `json:"file"`
	Workers  int                 `json:"workers"`
}

type SetOperation struct {
	Words     []string `json:"words"`
	Operation string   `json:"operation"`
}

type Options struct {
	Key             string  `json:"key"`
	FuzzyThreshold  float64 `json:"fuzzy_threshold"`
	MaxResults      int     `json:"max_results"`
	MaxEditDistance int     `json:"max_edit_distance"`
	MaxSuggestions  int     `json:"max_suggestions"`
}

type Database struct {
	TableName     string `json:"table_name"`
	Database      string `json:"database"`
	Query         string `json:"query"`
	Driver        string `json:"driver"`
	IndexKey      string `json:"index_key"`
	Password      string `json:"password"`
	Host          string `json:"host"`
	SslMode       string `json:"ssl_mode"`
	Username      string `json:"username"`
	WordField     string `json:"word_field"`
	ColumnField   string `json:"column_field"`
	ModifiedField string `json:"modified_field"`
	ModifiedSince string `json:"modified_since"`
	Port          int    `json:"port"`
	BatchSize     int    `json:"batch_size"`
}
