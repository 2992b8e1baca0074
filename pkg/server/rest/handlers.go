package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/engine/routingalgorithm"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	Route(ctx context.Context, q service.RouteQuery) (service.Route, error)
	Nearest(ctx context.Context, p datastructure.Coordinate) (service.NearestNode, error)
	GraphInfo(ctx context.Context) (service.GraphInfo, error)
	ReloadGraph(ctx context.Context) (service.GraphInfo, error)
}

type NavigationHandler struct {
	svc      NavigationService
	validate *validator.Validate
	trans    ut.Translator
}

func NavigatorRouter(r *chi.Mux, svc NavigationService) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/route", handler.Route)
			r.Post("/nearest", handler.Nearest)
			r.Get("/graph", handler.GraphInfo)
			r.Post("/graph/reload", handler.ReloadGraph)
		})
	})
}

// Coord model info
//
//	@Description	latitude / longitude in degrees
type Coord struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (c Coord) toCoordinate() datastructure.Coordinate {
	return datastructure.NewCoordinate(c.Lat, c.Lon)
}

// RouteRequest model info
//
//	@Description	request body for a visualized route search
type RouteRequest struct {
	Start     *Coord `json:"start" validate:"required"`
	Goal      *Coord `json:"goal" validate:"required"`
	Algorithm string `json:"algorithm" validate:"omitempty,oneof=bfs dijkstra astar"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.Start == nil || s.Goal == nil {
		return errors.New("start and goal coordinates are required")
	}
	if s.Algorithm == "" {
		s.Algorithm = routingalgorithm.AStar.String()
	}
	return nil
}

// RouteResponse model info
//
//	@Description	bounded route and search trace for animation
type RouteResponse struct {
	RunID        string                        `json:"runId"`
	Algorithm    string                        `json:"algorithm"`
	Path         []datastructure.Coordinate    `json:"path"`
	NodePath     []string                      `json:"nodePath"`
	Polyline     string                        `json:"polyline"`
	Steps        []routingalgorithm.SearchStep `json:"steps"`
	Distance     float64                       `json:"distance"`
	Visited      int                           `json:"visited"`
	ElapsedMs    int64                         `json:"elapsedMs"`
	Start        datastructure.Coordinate      `json:"start"`
	Goal         datastructure.Coordinate      `json:"goal"`
	StartNode    string                        `json:"startNode"`
	GoalNode     string                        `json:"goalNode"`
	StepNodes    []datastructure.Node          `json:"stepNodes"`
	BBox         *datastructure.BoundingBox    `json:"bbox,omitempty"`
	VisitedOrder []string                      `json:"visitedOrder"`
	HeatMap      []service.HeatCell            `json:"heatMap"`
	Truncated    bool                          `json:"truncated"`
	FallbackUsed bool                          `json:"fallbackUsed"`
}

func RenderRouteResponse(route service.Route) *RouteResponse {
	p := route.Payload
	return &RouteResponse{
		RunID:        route.RunID,
		Algorithm:    route.Algorithm,
		Path:         p.Path,
		NodePath:     p.NodePath,
		Polyline:     route.Polyline,
		Steps:        p.Steps,
		Distance:     p.Distance,
		Visited:      p.Visited,
		ElapsedMs:    route.Elapsed.Round(time.Millisecond).Milliseconds(),
		Start:        route.Start,
		Goal:         route.Goal,
		StartNode:    p.StartNode,
		GoalNode:     p.GoalNode,
		StepNodes:    p.StepNodes,
		BBox:         route.BBox,
		VisitedOrder: p.VisitedOrder,
		HeatMap:      route.HeatMap,
		Truncated:    p.Truncated,
		FallbackUsed: p.FallbackUsed,
	}
}

// Route
//
//	@Summary		search a path between two coordinates and return a bounded replay trace
//	@Description	snaps start and goal to their nearest graph nodes, runs bfs, dijkstra or astar and retries on the undirected graph when the directed one has no path
//	@Tags			navigations
//	@Param			body	body	RouteRequest	true	"route request"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/route [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		503	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) Route(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	strategy, err := routingalgorithm.ParseStrategy(data.Algorithm)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	route, err := h.svc.Route(r.Context(), service.RouteQuery{
		Start:     data.Start.toCoordinate(),
		Goal:      data.Goal.toCoordinate(),
		Algorithm: strategy,
	})
	if err != nil {
		render.Render(w, r, ErrFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(route))
}

// NearestRequest model info
//
//	@Description	request body for nearest node lookup
type NearestRequest struct {
	Coord
}

func (s *NearestRequest) Bind(r *http.Request) error {
	return nil
}

// NearestResponse model info
//
//	@Description	nearest graph node and its great-circle distance in meters
type NearestResponse struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance"`
}

// Nearest
//
//	@Summary		nearest graph node to a coordinate
//	@Tags			navigations
//	@Param			body	body	NearestRequest	true	"coordinate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/nearest [post]
//	@Success		200	{object}	NearestResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		503	{object}	ErrResponse
func (h *NavigationHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	data := &NearestRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	nearest, err := h.svc.Nearest(r.Context(), data.toCoordinate())
	if err != nil {
		render.Render(w, r, ErrFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearestResponse{ID: nearest.ID, Lat: nearest.Lat, Lon: nearest.Lon, Distance: nearest.Distance})
}

// GraphInfoResponse model info
//
//	@Description	size and extent of the loaded graph
type GraphInfoResponse struct {
	Nodes    int                        `json:"nodes"`
	Edges    int                        `json:"edges"`
	BBox     *datastructure.BoundingBox `json:"bbox,omitempty"`
	LoadedAt time.Time                  `json:"loadedAt"`
}

func RenderGraphInfoResponse(info service.GraphInfo) *GraphInfoResponse {
	return &GraphInfoResponse{Nodes: info.Nodes, Edges: info.Edges, BBox: info.BBox, LoadedAt: info.LoadedAt}
}

// GraphInfo
//
//	@Summary		loaded graph summary
//	@Tags			navigations
//	@Produce		application/json
//	@Router			/navigations/graph [get]
//	@Success		200	{object}	GraphInfoResponse
//	@Failure		503	{object}	ErrResponse
func (h *NavigationHandler) GraphInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.GraphInfo(r.Context())
	if err != nil {
		render.Render(w, r, ErrFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderGraphInfoResponse(info))
}

// ReloadGraph
//
//	@Summary		load the graph again, keeping the current one if the load fails
//	@Tags			navigations
//	@Produce		application/json
//	@Router			/navigations/graph/reload [post]
//	@Success		200	{object}	GraphInfoResponse
//	@Failure		503	{object}	ErrResponse
func (h *NavigationHandler) ReloadGraph(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.ReloadGraph(r.Context())
	if err != nil {
		render.Render(w, r, ErrFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderGraphInfoResponse(info))
}
