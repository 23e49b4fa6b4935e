package service

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/donspeedie/CRM/internal/config"
	"github.com/donspeedie/CRM/pkg/model"
)

// ContactDirectory is the contact access surface the handlers talk to. It is
// implemented by the Firestore-backed store in production and by an
// in-memory fake in the unit tests.
type ContactDirectory interface {
	Create(ctx context.Context, userID string, in model.CreateContactInput) (string, error)
	Get(ctx context.Context, contactID string) (*model.Contact, error)
	GetAll(ctx context.Context, userID string) ([]model.Contact, error)
	GetByTag(ctx context.Context, userID string, tag string) ([]model.Contact, error)
	GetNeedingFollowUp(ctx context.Context, userID string) ([]model.Contact, error)
	Update(ctx context.Context, contactID string, in model.UpdateContactInput) error
	Delete(ctx context.Context, contactID string) error
	Search(ctx context.Context, userID string, term string) ([]model.Contact, error)
}

// InteractionLog is the interaction access surface the handlers talk to.
type InteractionLog interface {
	Add(ctx context.Context, userID string, contactID string, in model.AddInteractionInput) (string, error)
	ListForContact(ctx context.Context, contactID string) ([]model.Interaction, error)
}

// contacts is a handle to the contact access layer.
var contacts ContactDirectory

// interactions is a handle to the interaction access layer.
var interactions InteractionLog

// startTime is when the service came up; reported by the health endpoint.
var startTime = time.Now()

// SetupStores wires the access layers into the handlers. The arguments can
// be the real Firestore-backed stores for production use or fakes within
// unit tests.
func SetupStores(c ContactDirectory, i InteractionLog) {
	contacts = c
	interactions = i
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints. Everything under /contacts requires a bearer token; the health
// and metrics endpoints stay open so that probes and scrapers can reach
// them.
func SetupHttpRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), trackMetrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", health)
	router.GET("/metrics", metricsHandler())

	authorized := router.Group("/", requireUser(cfg.Secret))
	authorized.POST("/contacts", createContact)
	authorized.GET("/contacts", findContacts)
	authorized.GET("/contacts/followups", findFollowUps)
	authorized.GET("/contacts/:id", findContactByID)
	authorized.PUT("/contacts/:id", updateContactByID)
	authorized.DELETE("/contacts/:id", deleteContactByID)
	authorized.POST("/contacts/:id/interactions", addInteraction)
	authorized.GET("/contacts/:id/interactions", findInteractions)
	return router
}

// health responds with the service status and uptime.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/health"
func health(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(startTime).Round(time.Second).String(),
	})
}

// createContact inserts the contact specified in the request's JSON for the
// calling user. It responds with the newly assigned id.
//
// The name is the only required field. An omitted tag list is stored as an
// empty set, an omitted source as "Manual Entry", and the relationship score
// starts at its default; deeper validation of the free-text fields is left
// to the dashboard.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"name": "Ana", "company": "Acme Corp", "source": "LinkedIn"}'
func createContact(c *gin.Context) {
	var in model.CreateContactInput
	if err := c.BindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	id, err := contacts.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"id": id})
}

// findContacts responds with a list of the calling user's contacts as JSON,
// ordered by their update timestamp with the most recent first.
//
// The URL parameter 'tag' restricts the result to contacts carrying the
// given tag. It must be one of the known tag values.
//
// The URL parameter 'search' runs a free-text search over name, email,
// company and phone instead. The search fetches all contacts of the user and
// filters them in memory, so its cost grows with the size of the contact
// list.
//
// REST API calls:
//
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts"
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts?tag=Personal"
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts?search=acme"
func findContacts(c *gin.Context) {
	userID := currentUser(c)
	var result []model.Contact
	var err error
	if term := c.Query("search"); term != "" {
		result, err = contacts.Search(c.Request.Context(), userID, term)
	} else if tag := c.Query("tag"); tag != "" {
		if !contains(model.Tags, tag) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid tag parameter"})
			return
		}
		result, err = contacts.GetByTag(c.Request.Context(), userID, tag)
	} else {
		result, err = contacts.GetAll(c.Request.Context(), userID)
	}
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, result)
}

// findFollowUps responds with the calling user's contacts whose follow-up
// date has been reached, most overdue first. Contacts without a follow-up
// date are not part of the result.
//
// Example REST API call:
//
//	> curl --header "Authorization: Bearer $TOKEN" "http://localhost:8080/contacts/followups"
func findFollowUps(c *gin.Context) {
	result, err := contacts.GetNeedingFollowUp(c.Request.Context(), currentUser(c))
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, result)
}

// findContactByID locates the contact whose id matches the id parameter of
// the request URL, then returns that contact as a response.
//
// Example REST API call:
//
//	> curl --header "Authorization: Bearer $TOKEN" http://localhost:8080/contacts/8Qx1kzzino2RprVaDHdK
func findContactByID(c *gin.Context) {
	contact, err := contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	if contact == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// updateContactByID updates the contact whose id matches the id parameter of
// the request URL with the values specified in the JSON (and only those),
// and finally responds with the new version of the contact. The update
// timestamp is refreshed on every successful call.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/contacts/8Qx1kzzino2RprVaDHdK --request "PUT" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"company": "Acme"}'
//	> curl http://localhost:8080/contacts/8Qx1kzzino2RprVaDHdK --request "PUT" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"nextFollowUp": "2026-09-15T09:00:00Z"}'
func updateContactByID(c *gin.Context) {
	id := c.Param("id")
	var in model.UpdateContactInput
	if err := c.BindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}

	// It only makes sense to continue if we have at least one value to update.
	if !hasUpdates(in) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no values to be updated"})
		return
	}

	if err := contacts.Update(c.Request.Context(), id, in); err != nil {
		abortWithStoreError(c, err)
		return
	}

	// In the HTTP response, return the full contact after the update.
	contact, err := contacts.Get(c.Request.Context(), id)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	if contact == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// hasUpdates reports whether at least one field of the partial update is
// set.
func hasUpdates(in model.UpdateContactInput) bool {
	return in.Name != nil || in.Email != nil || in.Phone != nil ||
		in.Company != nil || in.Role != nil || in.Tags != nil ||
		in.Source != nil || in.Notes != nil || in.RelationshipScore != nil ||
		in.LastContact != nil || in.NextFollowUp != nil
}

// deleteContactByID deletes the contact whose id matches the id parameter of
// the request URL from the store. The deletion is unconditional; a missing
// contact is not reported, and interactions of the contact are kept.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/8Qx1kzzino2RprVaDHdK --request "DELETE" --header "Authorization: Bearer $TOKEN"
func deleteContactByID(c *gin.Context) {
	if err := contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

// addInteraction appends an interaction to the contact named in the request
// URL and responds with the newly assigned id. As a side effect the
// contact's lastContact moves to the current time; this happens in a second
// write after the interaction exists, so the two are not atomic.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/8Qx1kzzino2RprVaDHdK/interactions --request "POST" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"type": "call", "summary": "intro"}'
func addInteraction(c *gin.Context) {
	var in model.AddInteractionInput
	if err := c.BindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	id, err := interactions.Add(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"id": id})
}

// findInteractions responds with all interactions of the contact named in
// the request URL, newest first.
//
// Example REST API call:
//
//	> curl --header "Authorization: Bearer $TOKEN" http://localhost:8080/contacts/8Qx1kzzino2RprVaDHdK/interactions
func findInteractions(c *gin.Context) {
	result, err := interactions.ListForContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, result)
}

// abortWithStoreError maps a store failure onto an HTTP response. A
// not-found from the store becomes a 404; everything else is logged and
// answered with a 500, leaving the underlying error untranslated.
func abortWithStoreError(c *gin.Context, err error) {
	if status.Code(err) == codes.NotFound {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	zap.L().Error("store operation failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "store error"})
}

// contains returns true if a string is present in a slice.
func contains(slice []string, str string) bool {
	for _, v := range slice {
		if v == str {
			return true
		}
	}
	return false
}
