package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	agentsapp "github.com/dmehra2102/smart-inventory/internal/agents/application"
	agentsdomain "github.com/dmehra2102/smart-inventory/internal/agents/domain"
	analyticsapp "github.com/dmehra2102/smart-inventory/internal/analytics/application"
	catalogapp "github.com/dmehra2102/smart-inventory/internal/catalog/application"
	catalogdomain "github.com/dmehra2102/smart-inventory/internal/catalog/domain"
	identityapp "github.com/dmehra2102/smart-inventory/internal/identity/application"
	identitydomain "github.com/dmehra2102/smart-inventory/internal/identity/domain"
	orderapp "github.com/dmehra2102/smart-inventory/internal/order/application"
	orderdomain "github.com/dmehra2102/smart-inventory/internal/order/domain"
)

// Handler is the single HTTP surface: storefront, checkout, auth, and admin.
type Handler struct {
	log       *slog.Logger
	catalog   *catalogapp.Service
	checkout  *orderapp.Service
	analytics *analyticsapp.Service
	eventLog  agentsapp.EventLogRepository
	identity  *identityapp.Service
	lowStock  int64
	tracer    trace.Tracer
}

func NewHandler(
	log *slog.Logger,
	catalog *catalogapp.Service,
	checkout *orderapp.Service,
	analytics *analyticsapp.Service,
	eventLog agentsapp.EventLogRepository,
	identity *identityapp.Service,
	lowStock int64,
) *Handler {
	return &Handler{
		log:       log,
		catalog:   catalog,
		checkout:  checkout,
		analytics: analytics,
		eventLog:  eventLog,
		identity:  identity,
		lowStock:  lowStock,
		tracer:    otel.Tracer("gateway-http"),
	}
}

// Routes builds the router. extra middlewares (e.g. idempotency) are applied
// to the checkout route only.
func (h *Handler) Routes(checkoutMiddlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireRole(identitydomain.RoleCustomer))
		r.Get("/shop-items", h.shopItems)
		r.With(checkoutMiddlewares...).Post("/checkout", h.placeOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireRole(identitydomain.RoleAdmin))
		r.Get("/admin-data", h.adminData)
		r.Get("/admin/orders", h.adminOrders)
		r.Get("/admin/analytics", h.adminAnalytics)
		r.Post("/admin/add-item", h.addItem)
		r.Delete("/admin/delete-item/{key}", h.deleteItem)
		r.Post("/admin/set-stock", h.setStock)
		r.Post("/admin/set-price", h.setPrice)
		r.Post("/admin/reset-logs", h.reset)
	})

	return r
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.identity.Signup(r.Context(), req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account created"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	sess, err := h.identity.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": sess.Token, "role": string(sess.Role)})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req logoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.identity.Logout(r.Context(), req.Token); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handler) shopItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	view := make(map[string]shopItemView, len(items))
	for _, item := range items {
		v := shopItemView{
			Name:   item.Name,
			Stock:  item.Stock,
			Price:  item.Price,
			CanBuy: item.Stock > 0,
		}
		if item.Stock <= h.lowStock {
			stock := item.Stock
			v.Warning = &stock
		}
		view[item.Key] = v
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	sess := sessionFrom(ctx)
	customer := orderapp.Customer{Name: sess.Name, Email: sess.Email}
	order, notices, err := h.checkout.Checkout(ctx, customer, req.Cart)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if notices == nil {
		notices = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order placed",
		"orderId": order.ID,
		"total":   order.Total,
		"notices": notices,
	})
}

func (h *Handler) adminData(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	monitoring, err := h.eventLog.ListRecentFirst(r.Context(), agentsdomain.KindMonitoring)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	forecasting, err := h.eventLog.ListRecentFirst(r.Context(), agentsdomain.KindForecasting)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminDataResp{
		Inventory:   toItemViews(items),
		Monitoring:  toLogViews(monitoring),
		Forecasting: toLogViews(forecasting),
	})
}

func (h *Handler) adminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.checkout.ListRecentFirst(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

func (h *Handler) adminAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.Report(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	item, err := h.catalog.AddItem(r.Context(), req.Name, req.Stock, req.Price)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item added", "key": item.Key})
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RemoveItem(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	var req setStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.catalog.SetStock(r.Context(), req.Key, req.Stock); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Stock updated"})
}

func (h *Handler) setPrice(w http.ResponseWriter, r *http.Request) {
	var req setPriceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.catalog.SetPrice(r.Context(), req.Key, req.Price); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Price updated"})
}

// reset clears both agent logs and the order ledger, then restores every
// seeded item to its starter stock. Safe to call repeatedly.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.eventLog.Clear(ctx); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.checkout.Clear(ctx); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.catalog.RestoreSeedStock(ctx); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logs and stocks reset successfully"})
}

// fail maps domain errors onto HTTP statuses. Unrecognised errors become a
// generic 500 with no partial-success detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrItemNotFound),
		errors.Is(err, identitydomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalogdomain.ErrNegativeValue),
		errors.Is(err, catalogdomain.ErrItemExists),
		errors.Is(err, catalogdomain.ErrEmptyName),
		errors.Is(err, orderdomain.ErrEmptyCart),
		errors.Is(err, orderdomain.ErrInvalidQuantity),
		errors.Is(err, identitydomain.ErrUserExists),
		errors.Is(err, identitydomain.ErrMissingField):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, identitydomain.ErrInvalidCredentials),
		errors.Is(err, identitydomain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
