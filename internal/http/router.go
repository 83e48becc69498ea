package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type router struct {
	userService     UserService
	teamService     TeamService
	workItemService WorkItemService
	issueService    IssueService
	validate        *validator.Validate
	log             *slog.Logger
}

func NewRouter(
	userService UserService,
	teamService TeamService,
	workItemService WorkItemService,
	issueService IssueService,
	log *slog.Logger,
) (http.Handler, error) {
	if userService == nil {
		return nil, errors.New("user service cannot be nil")
	}
	if teamService == nil {
		return nil, errors.New("team service cannot be nil")
	}
	if workItemService == nil {
		return nil, errors.New("work item service cannot be nil")
	}
	if issueService == nil {
		return nil, errors.New("issue service cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	rtr := &router{
		userService:     userService,
		teamService:     teamService,
		workItemService: workItemService,
		issueService:    issueService,
		validate:        validator.New(),
		log:             log,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(rtr.loggingMiddleware)

	r.Get("/ping", rtr.ping)

	r.Route("/users", func(r chi.Router) {
		r.Post("/create", rtr.createUser)
		r.Post("/update", rtr.updateUser)
		r.Post("/setIsActive", rtr.setUserActive)
		r.Post("/addWorkItem", rtr.addWorkItemToUser)
		r.Get("/get", rtr.getUser)
		r.Get("/list", rtr.listUsers)
		r.Get("/workItems", rtr.getUserWorkItems)
	})

	r.Route("/team", func(r chi.Router) {
		r.Post("/add", rtr.createTeam)
		r.Post("/update", rtr.updateTeam)
		r.Post("/setIsActive", rtr.setTeamActive)
		r.Post("/assignUser", rtr.assignUserToTeam)
		r.Get("/get", rtr.getTeamUsers)
		r.Get("/list", rtr.listTeams)
	})

	r.Route("/workItem", func(r chi.Router) {
		r.Post("/create", rtr.createWorkItem)
		r.Post("/update", rtr.updateWorkItem)
		r.Post("/setStatus", rtr.setWorkItemStatus)
		r.Post("/setIsActive", rtr.setWorkItemActive)
		r.Get("/get", rtr.getWorkItem)
		r.Get("/list", rtr.listWorkItems)
	})

	r.Route("/issue", func(r chi.Router) {
		r.Post("/addToWorkItem", rtr.addIssueToWorkItem)
		r.Post("/update", rtr.updateIssue)
		r.Post("/setIsActive", rtr.setIssueActive)
		r.Get("/get", rtr.getIssue)
		r.Get("/list", rtr.listIssues)
		r.Get("/workItems", rtr.getWorkItemsWithIssue)
	})

	return r, nil
}

func (rtr *router) responseJSON(w http.ResponseWriter, statusCode int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		rtr.log.Error("failed to encode response", slog.Any("error", err))
	}
}
