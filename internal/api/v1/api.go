package v1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Xunop/biblioteca/internal/middleware"
	"github.com/Xunop/biblioteca/internal/store"
)

type Handler struct {
	store       *store.Store
	maxBodySize int64
	// Writes need a token signed with secret when it is set.
	secret string
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(store *store.Store, maxBodySize int64, secret string) *Handler {
	return &Handler{
		store:       store,
		maxBodySize: maxBodySize,
		secret:      secret,
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	if handler.secret != "" {
		sr.Use(middleware.WriteGuard(handler.secret))
	}

	sr.HandleFunc("/authors", handler.listAuthors).Methods(http.MethodGet)
	sr.HandleFunc("/authors", handler.createAuthor).Methods(http.MethodPost)
	sr.HandleFunc("/authors/{id:[0-9]+}", handler.getAuthor).Methods(http.MethodGet)
	sr.HandleFunc("/authors/{id:[0-9]+}", handler.replaceAuthor).Methods(http.MethodPut)
	sr.HandleFunc("/authors/{id:[0-9]+}", handler.patchAuthor).Methods(http.MethodPatch)
	sr.HandleFunc("/authors/{id:[0-9]+}", handler.deleteAuthor).Methods(http.MethodDelete)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.createBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/author/id/{id:[0-9]+}", handler.listBooksByAuthorID).Methods(http.MethodGet)
	sr.HandleFunc("/books/author/name/{name}", handler.listBooksByAuthorName).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.replaceBook).Methods(http.MethodPut)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.patchBook).Methods(http.MethodPatch)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.deleteBook).Methods(http.MethodDelete)

	sr.HandleFunc("/genres", handler.listGenres).Methods(http.MethodGet)
	sr.HandleFunc("/genres", handler.createGenre).Methods(http.MethodPost)
	sr.HandleFunc("/genres/{id:[0-9]+}", handler.getGenre).Methods(http.MethodGet)
	sr.HandleFunc("/genres/{id:[0-9]+}/books", handler.listGenreBooks).Methods(http.MethodGet)
	sr.HandleFunc("/genres/{id:[0-9]+}", handler.replaceGenre).Methods(http.MethodPut)
	sr.HandleFunc("/genres/{id:[0-9]+}", handler.patchGenre).Methods(http.MethodPatch)
	sr.HandleFunc("/genres/{id:[0-9]+}", handler.deleteGenre).Methods(http.MethodDelete)

	sr.HandleFunc("/borrowers", handler.listBorrowers).Methods(http.MethodGet)
	sr.HandleFunc("/borrowers", handler.createBorrower).Methods(http.MethodPost)
	sr.HandleFunc("/borrowers/{id:[0-9]+}", handler.getBorrower).Methods(http.MethodGet)
	sr.HandleFunc("/borrowers/{id:[0-9]+}/loans", handler.listBorrowerLoans).Methods(http.MethodGet)
	sr.HandleFunc("/borrowers/{id:[0-9]+}", handler.replaceBorrower).Methods(http.MethodPut)
	sr.HandleFunc("/borrowers/{id:[0-9]+}", handler.patchBorrower).Methods(http.MethodPatch)
	sr.HandleFunc("/borrowers/{id:[0-9]+}", handler.deleteBorrower).Methods(http.MethodDelete)

	sr.HandleFunc("/loans", handler.listLoans).Methods(http.MethodGet)
	sr.HandleFunc("/loans", handler.createLoan).Methods(http.MethodPost)
	sr.HandleFunc("/loans/{id:[0-9]+}", handler.getLoan).Methods(http.MethodGet)
	sr.HandleFunc("/loans/{id:[0-9]+}", handler.replaceLoan).Methods(http.MethodPut)
	sr.HandleFunc("/loans/{id:[0-9]+}", handler.patchLoan).Methods(http.MethodPatch)
	sr.HandleFunc("/loans/{id:[0-9]+}", handler.deleteLoan).Methods(http.MethodDelete)

	// Stock rows are keyed by their book id.
	sr.HandleFunc("/stock", handler.listStock).Methods(http.MethodGet)
	sr.HandleFunc("/stock", handler.createStock).Methods(http.MethodPost)
	sr.HandleFunc("/stock/book/{id:[0-9]+}", handler.getStock).Methods(http.MethodGet)
	sr.HandleFunc("/stock/{id:[0-9]+}", handler.getStock).Methods(http.MethodGet)
	sr.HandleFunc("/stock/{id:[0-9]+}", handler.replaceStock).Methods(http.MethodPut)
	sr.HandleFunc("/stock/{id:[0-9]+}", handler.patchStock).Methods(http.MethodPatch)
	sr.HandleFunc("/stock/{id:[0-9]+}", handler.deleteStock).Methods(http.MethodDelete)

	sr.HandleFunc("/loan-history", handler.listLoanHistory).Methods(http.MethodGet)
	sr.HandleFunc("/loan-history", handler.createLoanHistory).Methods(http.MethodPost)
	sr.HandleFunc("/loan-history/book/{id:[0-9]+}", handler.listLoanHistoryByBook).Methods(http.MethodGet)
	sr.HandleFunc("/loan-history/borrower/{id:[0-9]+}", handler.listLoanHistoryByBorrower).Methods(http.MethodGet)
	sr.HandleFunc("/loan-history/{id:[0-9]+}", handler.getLoanHistory).Methods(http.MethodGet)
	sr.HandleFunc("/loan-history/{id:[0-9]+}", handler.replaceLoanHistory).Methods(http.MethodPut)
	sr.HandleFunc("/loan-history/{id:[0-9]+}", handler.patchLoanHistory).Methods(http.MethodPatch)
	sr.HandleFunc("/loan-history/{id:[0-9]+}", handler.deleteLoanHistory).Methods(http.MethodDelete)

	sr.HandleFunc("/logs", handler.listLogEntries).Methods(http.MethodGet)
	sr.HandleFunc("/logs", handler.createLogEntry).Methods(http.MethodPost)
	sr.HandleFunc("/logs/{id:[0-9]+}", handler.getLogEntry).Methods(http.MethodGet)
	sr.HandleFunc("/logs/{id:[0-9]+}", handler.replaceLogEntry).Methods(http.MethodPut)
	sr.HandleFunc("/logs/{id:[0-9]+}", handler.patchLogEntry).Methods(http.MethodPatch)
	sr.HandleFunc("/logs/{id:[0-9]+}", handler.deleteLogEntry).Methods(http.MethodDelete)
}
