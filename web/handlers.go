package web

import (
	"context"
	"runtime"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/oarkflow/filters"
	"github.com/oarkflow/frame"
	"github.com/oarkflow/frame/middlewares/server/cors"
	"github.com/oarkflow/frame/middlewares/server/monitor"
	"github.com/oarkflow/frame/pkg/common/utils"
	"github.com/oarkflow/frame/pkg/protocol/consts"
	"github.com/oarkflow/frame/pkg/route"
	"github.com/oarkflow/frame/server"
	"github.com/oarkflow/metadata"

	"github.com/oarkflow/wordmap"
	"github.com/oarkflow/wordmap/lib"
)

type MappingController struct{}

func NewMappingController() *MappingController {
	return &MappingController{}
}

var controller = NewMappingController()

var startedAt = time.Now()

func (f *MappingController) NewEngine(_ context.Context, ctx *frame.Context) {
	var req Options
	err := ctx.Bind(&req)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	if req.Key == "" {
		Failed(ctx, consts.StatusBadRequest, "Key not provided", nil)
		return
	}
	cfg := wordmap.GetConfig(req.Key)
	if req.FuzzyThreshold != 0 {
		cfg.FuzzyThreshold = req.FuzzyThreshold
	}
	if req.MaxResults != 0 {
		cfg.MaxResults = req.MaxResults
	}
	if req.MaxEditDistance != 0 {
		cfg.MaxEditDistance = req.MaxEditDistance
	}
	if req.MaxSuggestions != 0 {
		cfg.MaxSuggestions = req.MaxSuggestions
	}
	wordmap.SetEngine(req.Key, cfg)
	Success(ctx, consts.StatusOK, utils.H{"key": req.Key}, "New mapping engine added")
}

func (f *MappingController) Engines(_ context.Context, ctx *frame.Context) {
	Success(ctx, consts.StatusOK, wordmap.AvailableEngines())
}

var builtInFields = []string{"q", "t", "s", "d", "n"}

func (f *MappingController) Search(_ context.Context, ctx *frame.Context) {
	var query Query
	err := ctx.Bind(&query)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	var extraMap map[string]any
	var extra []*filters.Filter
	err = ctx.Bind(&extra)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	err = ctx.Bind(&extraMap)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	if extraMap != nil {
		for k, v := range extraMap {
			if slices.Contains(builtInFields, k) {
				delete(extraMap, k)
			} else {
				extra = append(extra, &filters.Filter{
					Field:    k,
					Operator: filters.Equal,
					Value:    v,
				})
			}
		}
	}
	if len(extra) == 0 {
		extra, err = filters.ParseQuery(ctx.QueryArgs().String(), builtInFields...)
		if err != nil {
			Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
			return
		}
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	params := &wordmap.SearchParams{
		Query:              query.Query,
		FuzzyThreshold:     query.FuzzyThreshold,
		MaxResults:         query.MaxResults,
		MaxEditDistance:    query.MaxEditDistance,
		IncludeSuggestions: !query.NoSuggestions,
	}
	response := engine.Search(params)
	if len(extra) > 0 {
		filterResults(response, extra)
	}
	Success(ctx, consts.StatusOK, response)
}

// filterResults applies request filters to the ranked results, treating each
// result as a flat record. Column totals are recomputed from the survivors.
func filterResults(response *wordmap.SearchResponse, extra []*filters.Filter) {
	kept := response.Results[:0]
	for _, result := range response.Results {
		record := map[string]any{
			"word":          result.Word,
			"confidence":    result.Confidence,
			"match_type":    result.MatchType,
			"edit_distance": result.EditDistance,
			"columns":       result.Columns,
		}
		if filters.MatchGroup(record, &filters.FilterGroup{Operator: filters.AND, Filters: extra}) {
			kept = append(kept, result)
		}
	}
	response.Results = kept
	response.TotalResults = len(kept)
	var allColumns []string
	for _, result := range kept {
		allColumns = append(allColumns, result.Columns...)
	}
	if allColumns == nil {
		allColumns = []string{}
	}
	response.TotalAllColumns = allColumns
	response.TotalUniqueColumns = lib.Unique(allColumns)
	if response.TotalUniqueColumns == nil {
		response.TotalUniqueColumns = []string{}
	}
}

func (f *MappingController) BatchSearch(_ context.Context, ctx *frame.Context) {
	var req BatchQuery
	err := ctx.Bind(&req)
	if err != nil || len(req.Queries) == 0 {
		Failed(ctx, consts.StatusBadRequest, "No queries provided", nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	start := time.Now()
	responses := make([]*wordmap.SearchResponse, 0, len(req.Queries))
	for _, query := range req.Queries {
		responses = append(responses, engine.Search(&wordmap.SearchParams{
			Query:              query,
			FuzzyThreshold:     req.FuzzyThreshold,
			MaxResults:         req.MaxResults,
			MaxEditDistance:    req.MaxEditDistance,
			IncludeSuggestions: !req.NoSuggestions,
		}))
	}
	Success(ctx, consts.StatusOK, utils.H{
		"results":           responses,
		"total_queries":     len(req.Queries),
		"execution_time_ms": float64(time.Since(start)) / float64(time.Millisecond),
	})
}

func (f *MappingController) Suggest(_ context.Context, ctx *frame.Context) {
	var query Query
	err := ctx.Bind(&query)
	if err != nil || query.Query == "" {
		Failed(ctx, consts.StatusBadRequest, "Query not provided", nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	suggestions := engine.Matcher().SuggestCorrections(query.Query, engine.AllWords(), query.MaxResults)
	if suggestions == nil {
		suggestions = []string{}
	}
	Success(ctx, consts.StatusOK, utils.H{
		"query":       query.Query,
		"suggestions": suggestions,
	})
}

func (f *MappingController) Words(_ context.Context, ctx *frame.Context) {
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	words := engine.AllWords()
	Success(ctx, consts.StatusOK, utils.H{
		"words": words,
		"count": len(words),
	})
}

func (f *MappingController) Columns(_ context.Context, ctx *frame.Context) {
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	columns := engine.AllColumns()
	Success(ctx, consts.StatusOK, utils.H{
		"columns": columns,
		"count":   len(columns),
	})
}

func (f *MappingController) Variants(_ context.Context, ctx *frame.Context) {
	var query Query
	err := ctx.Bind(&query)
	if err != nil || query.Query == "" {
		Failed(ctx, consts.StatusBadRequest, "Query not provided", nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	variantSet := engine.WordVariants(query.Query)
	variants := make([]string, 0, len(variantSet))
	for variant := range variantSet {
		variants = append(variants, variant)
	}
	sort.Strings(variants)
	Success(ctx, consts.StatusOK, utils.H{
		"word":     query.Query,
		"variants": variants,
	})
}

func (f *MappingController) AddMapping(_ context.Context, ctx *frame.Context) {
	var req Mapping
	err := ctx.Bind(&req)
	if err != nil || req.Word == "" || len(req.Columns) == 0 {
		Failed(ctx, consts.StatusBadRequest, "Word and columns required", nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	engine.AddMapping(req.Word, req.Columns)
	Success(ctx, consts.StatusOK, req, "Mapping added")
}

func (f *MappingController) UpdateMapping(_ context.Context, ctx *frame.Context) {
	var req Mapping
	err := ctx.Bind(&req)
	if err != nil || req.Word == "" || len(req.Columns) == 0 {
		Failed(ctx, consts.StatusBadRequest, "Word and columns required", nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	engine.UpdateMapping(req.Word, req.Columns)
	Success(ctx, consts.StatusOK, req, "Mapping updated")
}

func (f *MappingController) RemoveMapping(_ context.Context, ctx *frame.Context) {
	word := ctx.Param("word")
	if word == "" {
		Failed(ctx, consts.StatusBadRequest, "Word not provided", nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	if !engine.RemoveMapping(word) {
		Failed(ctx, consts.StatusNotFound, "Word not indexed", utils.H{"word": word})
		return
	}
	Success(ctx, consts.StatusOK, utils.H{"word": word}, "Mapping removed")
}

func (f *MappingController) LoadMappings(_ context.Context, ctx *frame.Context) {
	var req LoadRequest
	err := ctx.Bind(&req)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	mappings := req.Mappings
	if req.File != "" {
		mappings, err = lib.ReadMappingFile(req.File)
		if err != nil {
			Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
			return
		}
	}
	if len(mappings) == 0 {
		Failed(ctx, consts.StatusBadRequest, "No mappings provided", nil)
		return
	}
	engine := wordmap.GetOrSetEngine(ctx.Param("key"))
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	errs := engine.LoadMappingsWithPool(mappings, workers, 1000)
	if len(errs) > 0 {
		Failed(ctx, consts.StatusInternalServerError, errs[0].Error(), utils.H{"failed": len(errs)})
		return
	}
	Success(ctx, consts.StatusOK, utils.H{
		"total_words": len(mappings),
	}, "Mappings loaded")
}

func (f *MappingController) ReverseLookup(_ context.Context, ctx *frame.Context) {
	column := ctx.Param("column")
	if column == "" {
		Failed(ctx, consts.StatusBadRequest, "Column not provided", nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	result, found := engine.ReverseSearch(column)
	if !found {
		Failed(ctx, consts.StatusNotFound, "Column not indexed", utils.H{"column_id": column})
		return
	}
	Success(ctx, consts.StatusOK, result)
}

func (f *MappingController) SetOperationSearch(_ context.Context, ctx *frame.Context) {
	var req SetOperation
	err := ctx.Bind(&req)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	var result *wordmap.SetOperationResult
	var status wordmap.SetOpStatus
	switch strings.ToUpper(req.Operation) {
	case "OR", "ANY", "UNION":
		result, status = engine.UnionSearch(req.Words)
	default:
		result, status = engine.IntersectionSearch(req.Words)
	}
	switch status {
	case wordmap.SetOpInvalid:
		Failed(ctx, consts.StatusBadRequest, "Not enough words for operation", utils.H{"words": req.Words})
	case wordmap.SetOpEmpty:
		Success(ctx, consts.StatusOK, utils.H{
			"query_words": req.Words,
			"found":       false,
			"columns":     []string{},
		})
	default:
		Success(ctx, consts.StatusOK, result)
	}
}

func (f *MappingController) Stats(_ context.Context, ctx *frame.Context) {
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	Success(ctx, consts.StatusOK, engine.GetStats())
}

func (f *MappingController) Clear(_ context.Context, ctx *frame.Context) {
	engine, err := wordmap.GetEngine(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	engine.Clear()
	Success(ctx, consts.StatusOK, nil, "Mappings cleared")
}

func (f *MappingController) ExtractFromDatabase(_ context.Context, ctx *frame.Context) {
	var dbConfig Database
	err := ctx.Bind(&dbConfig)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	if dbConfig.IndexKey == "" {
		Failed(ctx, consts.StatusBadRequest, "Index key not provided", nil)
		return
	}
	con := metadata.New(metadata.Config{
		Name:     dbConfig.IndexKey,
		Host:     dbConfig.Host,
		Port:     dbConfig.Port,
		Driver:   dbConfig.Driver,
		Username: dbConfig.Username,
		Password: dbConfig.Password,
		Database: dbConfig.Database,
		SslMode:  dbConfig.SslMode,
	})
	db, err := con.Connect()
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	start := time.Now()
	go func(db metadata.DataSource, dbConfig Database, start time.Time) {
		if dbConfig.Query != "" && strings.Contains(dbConfig.Query, "LIMIT") {
			extractionFailed(ExtractFromDB(db, dbConfig, start))
		} else {
			extractionFailed(ExtractFromDBWithPaginate(db, dbConfig, start))
		}
	}(db, dbConfig, start)
	Success(ctx, consts.StatusOK, utils.H{
		"index_key":  dbConfig.IndexKey,
		"started_at": start,
	}, "Extraction started in background")
}

func (f *MappingController) Health(_ context.Context, ctx *frame.Context) {
	Success(ctx, consts.StatusOK, utils.H{
		"status":  "healthy",
		"uptime":  time.Since(startedAt).String(),
		"engines": len(wordmap.AvailableEngines()),
	})
}

func (f *MappingController) Ready(_ context.Context, ctx *frame.Context) {
	Success(ctx, consts.StatusOK, utils.H{"ready": true})
}

func (f *MappingController) Live(_ context.Context, ctx *frame.Context) {
	Success(ctx, consts.StatusOK, utils.H{"alive": true})
}

func MappingRoutes(route route.IRouter) route.IRouter {
	route.POST("/new", controller.NewEngine)
	route.GET("/engines", controller.Engines)
	route.GET("/search/:key", controller.Search)
	route.POST("/search/:key", controller.Search)
	route.POST("/search/:key/batch", controller.BatchSearch)
	route.GET("/suggest/:key", controller.Suggest)
	route.GET("/words/:key", controller.Words)
	route.GET("/columns/:key", controller.Columns)
	route.GET("/variants/:key", controller.Variants)
	route.POST("/mappings/:key", controller.AddMapping)
	route.PUT("/mappings/:key", controller.UpdateMapping)
	route.DELETE("/mappings/:key/:word", controller.RemoveMapping)
	route.POST("/mappings/:key/load", controller.LoadMappings)
	route.GET("/reverse/:key/:column", controller.ReverseLookup)
	route.POST("/set/:key", controller.SetOperationSearch)
	route.GET("/stats/:key", controller.Stats)
	route.POST("/clear/:key", controller.Clear)
	route.POST("/database/extract", controller.ExtractFromDatabase)
	route.GET("/health", controller.Health)
	route.GET("/health/ready", controller.Ready)
	route.GET("/health/live", controller.Live)
	return route
}

func StartServer(addr string, routePrefix ...string) {
	prefix := "/"
	if len(routePrefix) > 0 {
		prefix = routePrefix[0]
	}
	srv := server.New(
		server.WithDisablePrintRoute(true),
		server.WithHostPorts(addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithStreamBody(true),
	)
	srv.Use(cors.Default())
	srv.GET("/monitor", monitor.New())
	MappingRoutes(srv.Group(prefix))
	srv.Spin()
}
