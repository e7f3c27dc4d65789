package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/TEJASTATODE/saas-notes/auth"
	"github.com/TEJASTATODE/saas-notes/middlewares"
	"github.com/TEJASTATODE/saas-notes/quota"
	"github.com/TEJASTATODE/saas-notes/store"
	"github.com/TEJASTATODE/saas-notes/token"
)

// Deps holds the constructed services handlers run on. Built once in main
// (or per test case) and passed down explicitly.
type Deps struct {
	Store    store.Store
	Tokens   *token.Service
	Resolver *auth.Resolver
	Enforcer *quota.Enforcer
	Logger   *zap.SugaredLogger
}

func SetupRoutes(mux *http.ServeMux, deps Deps) {
	authHandler := AuthHandler{store: deps.Store, tokens: deps.Tokens, logger: deps.Logger}
	noteHandler := NoteHandler{store: deps.Store, enforcer: deps.Enforcer, logger: deps.Logger}
	tenantHandler := TenantHandler{store: deps.Store, enforcer: deps.Enforcer, logger: deps.Logger}
	userHandler := UserHandler{store: deps.Store, logger: deps.Logger}

	authMiddleware := middlewares.AuthMiddleware{
		Resolver: deps.Resolver,
		Logger:   deps.Logger,
	}
	authed := authMiddleware.RequireAuth

	mux.HandleFunc("POST /api/auth/login", authHandler.login)
	mux.HandleFunc("GET /api/auth/self", authed(authHandler.self))

	mux.HandleFunc("POST /api/notes", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapNoteCreate))(noteHandler.create))
	mux.HandleFunc("GET /api/notes", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapNoteRead))(noteHandler.getAll))
	mux.HandleFunc("GET /api/notes/{id}", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapNoteRead))(noteHandler.getOne))
	mux.HandleFunc("PUT /api/notes/{id}", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapNoteUpdate))(noteHandler.update))
	mux.HandleFunc("DELETE /api/notes/{id}", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapNoteDelete))(noteHandler.delete))

	mux.HandleFunc("POST /api/admin/tenants/{slug}/upgrade", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapTenantUpgrade))(tenantHandler.upgrade))
	mux.HandleFunc("GET /api/admin/users", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapUserList))(userHandler.getAll))
	mux.HandleFunc("POST /api/admin/users/invite", middlewares.ChainMiddleware(authed, middlewares.RequireCapability(auth.CapUserInvite))(userHandler.invite))
}
