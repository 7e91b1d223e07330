package constants

// Centralized constants for headers, env keys, routes and API messages.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvServerAddress       = "SERVER_ADDRESS"
	EnvDatabasePath        = "DATABASE_PATH"
	EnvCatalogPath         = "CATALOG_PATH"
	EnvActionTimeout       = "ACTION_TIMEOUT"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "h_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteCards              = "/cards"
	RouteEnemies            = "/enemies"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RoutePlayerStats        = "/player-stats"
	RouteBattles            = "/battles"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleByCode       = "/battles/code/:joinCode"
	RouteBattleSubmit       = "/battles/:battleID/submit"
	RouteBattleReorder      = "/battles/:battleID/reorder"
	RouteBattleRewind       = "/battles/:battleID/rewind"
	RouteBattleRedraw       = "/battles/:battleID/redraw"
	RouteBattleResolve      = "/battles/:battleID/resolve"
	RouteBattleStep         = "/battles/:battleID/step"
	RouteBattleChoice       = "/battles/:battleID/choice"
	RouteBattleConcede      = "/battles/:battleID/concede"
	RouteBattleStream       = "/battles/:battleID/stream"
	RouteVersion            = "/version"
	RouteHealth             = "/health"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidBattleID  = "Invalid battle ID"
	ErrBattleNotFound   = "Battle not found"
	ErrEmailRequired    = "email is required"

	ErrFailedCreateBattle  = "Failed to create battle"
	ErrFailedUpdateBattle  = "Failed to update battle"
	ErrFailedFetchBattle   = "Failed to fetch battle"
	ErrFailedFetchStats    = "Failed to fetch stats"
	ErrFailedFetchCatalog  = "Failed to fetch card catalog"
	ErrBattleNotInProgress = "Battle is not in progress"
	ErrNotYourBattle       = "Battle belongs to another player"

	ErrSubmissionEmpty      = "Nothing to execute: select at least one card"
	ErrSubmissionOverBudget = "Submission exceeds the turn budget"
	ErrNothingToExecute     = "Nothing to execute: all queued actions were destroyed"
	ErrChoiceRequired       = "A card choice is pending; resolve it first"
	ErrNoChoicePending      = "No card choice is pending"
	ErrInvalidChoice        = "Selection is not among the offered cards"
	ErrRewindAlreadyUsed    = "Rewind already used this turn"
	ErrRedrawAlreadyUsed    = "Redraw already used this turn"
	ErrUnknownCard          = "Unknown card id"
	ErrWrongPhase           = "Operation not allowed in the current phase"

	ErrAuthRequired           = "Authentication required"
	ErrInvalidSession         = "Invalid session"
	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrNoEmailInGoogleProfile = "Google profile has no email"
	ErrFailedCreateSession    = "Failed to create session"
)

// Log field names shared by service and API layers.
const (
	LogFieldBattleID = "battle_id"
	LogFieldPlayer   = "player"
	LogFieldTurn     = "turn"
	LogFieldPhase    = "phase"
	LogFieldError    = "error"
)
