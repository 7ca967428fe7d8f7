package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List the medal and badge catalog
	// (GET /catalog)
	ListCatalog(w http.ResponseWriter, r *http.Request)
	// List awards held by a subject
	// (GET /subjects/{subjectId}/awards)
	ListAwards(w http.ResponseWriter, r *http.Request, subjectId string)
	// Sync the balance and evaluate awards
	// (POST /subjects/{subjectId}/awards/evaluate)
	EvaluateAwards(w http.ResponseWriter, r *http.Request, subjectId string)
	// Read the cached balance
	// (GET /subjects/{subjectId}/balance)
	GetBalance(w http.ResponseWriter, r *http.Request, subjectId string)
	// Reconcile the cached balance with the ledger
	// (POST /subjects/{subjectId}/balance/sync)
	SyncBalance(w http.ResponseWriter, r *http.Request, subjectId string, params SyncBalanceParams)
	// Compare cache, ledger total and raw rows
	// (GET /subjects/{subjectId}/inspection)
	GetInspection(w http.ResponseWriter, r *http.Request, subjectId string)
	// List ledger transactions
	// (GET /subjects/{subjectId}/transactions)
	ListTransactions(w http.ResponseWriter, r *http.Request, subjectId string, params ListTransactionsParams)
	// Grant or deduct points
	// (POST /subjects/{subjectId}/transactions)
	CreateTransaction(w http.ResponseWriter, r *http.Request, subjectId string)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) subjectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var subjectId string
	err := runtime.BindStyledParameterWithOptions("simple", "subjectId", chi.URLParam(r, "subjectId"), &subjectId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "subjectId", Err: err})
		return "", false
	}
	return subjectId, true
}

// ListCatalog operation middleware
func (siw *ServerInterfaceWrapper) ListCatalog(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListCatalog(w, r)
	})
}

// ListAwards operation middleware
func (siw *ServerInterfaceWrapper) ListAwards(w http.ResponseWriter, r *http.Request) {
	subjectId, ok := siw.subjectID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListAwards(w, r, subjectId)
	})
}

// EvaluateAwards operation middleware
func (siw *ServerInterfaceWrapper) EvaluateAwards(w http.ResponseWriter, r *http.Request) {
	subjectId, ok := siw.subjectID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.EvaluateAwards(w, r, subjectId)
	})
}

// GetBalance operation middleware
func (siw *ServerInterfaceWrapper) GetBalance(w http.ResponseWriter, r *http.Request) {
	subjectId, ok := siw.subjectID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetBalance(w, r, subjectId)
	})
}

// SyncBalance operation middleware
func (siw *ServerInterfaceWrapper) SyncBalance(w http.ResponseWriter, r *http.Request) {
	subjectId, ok := siw.subjectID(w, r)
	if !ok {
		return
	}

	var params SyncBalanceParams

	// ------------- Optional query parameter "force" -------------
	if err := runtime.BindQueryParameter("form", true, false, "force", r.URL.Query(), &params.Force); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "force", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SyncBalance(w, r, subjectId, params)
	})
}

// GetInspection operation middleware
func (siw *ServerInterfaceWrapper) GetInspection(w http.ResponseWriter, r *http.Request) {
	subjectId, ok := siw.subjectID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetInspection(w, r, subjectId)
	})
}

// ListTransactions operation middleware
func (siw *ServerInterfaceWrapper) ListTransactions(w http.ResponseWriter, r *http.Request) {
	subjectId, ok := siw.subjectID(w, r)
	if !ok {
		return
	}

	var params ListTransactionsParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest interface{}
	}{
		{"sign", &params.Sign},
		{"category_id", &params.CategoryId},
		{"since", &params.Since},
		{"until", &params.Until},
		{"limit", &params.Limit},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: b.name, Err: err})
			return
		}
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListTransactions(w, r, subjectId, params)
	})
}

// CreateTransaction operation middleware
func (siw *ServerInterfaceWrapper) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	subjectId, ok := siw.subjectID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateTransaction(w, r, subjectId)
	})
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching the points API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching the points API, mounted on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/catalog", wrapper.ListCatalog)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/subjects/{subjectId}/awards", wrapper.ListAwards)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/subjects/{subjectId}/awards/evaluate", wrapper.EvaluateAwards)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/subjects/{subjectId}/balance", wrapper.GetBalance)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/subjects/{subjectId}/balance/sync", wrapper.SyncBalance)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/subjects/{subjectId}/inspection", wrapper.GetInspection)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/subjects/{subjectId}/transactions", wrapper.ListTransactions)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/subjects/{subjectId}/transactions", wrapper.CreateTransaction)
	})

	return r
}
