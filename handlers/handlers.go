package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"merchstore/entities"
	"merchstore/models"
	"merchstore/services"
	"merchstore/wallet"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	cas services.CatalogService
	crs services.CartService
	cks *services.CheckoutService
	ads services.AdminService
}

type HandlerParams struct {
	CatalogService  services.CatalogService
	CartService     services.CartService
	CheckoutService *services.CheckoutService
	AdminService    services.AdminService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		cas: params.CatalogService,
		crs: params.CartService,
		cks: params.CheckoutService,
		ads: params.AdminService,
	}
}

// catalog

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	prods, err := h.cas.GetAll()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prods)
}

func (h *Handler) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	prods, err := h.cas.GetFeatured()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prods)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	prod, err := h.cas.GetProduct(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prod)
}

func (h *Handler) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	prods, err := h.cas.GetByCategory(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prods)
}

// admin catalog edits

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	prod := entities.Product{}
	err := json.NewDecoder(r.Body).Decode(&prod)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.cas.CreateProduct(prod)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	prod := entities.Product{}
	err := json.NewDecoder(r.Body).Decode(&prod)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod.Id = mux.Vars(r)["id"]
	updated, err := h.cas.UpdateProduct(prod)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.cas.DeleteProduct(mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		writeJSON(w, models.CartResponse{Lines: []entities.CartLine{}})
		return
	}
	resp, err := h.crs.GetCartResponse(sid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sid, _ := h.cartSession(w, r, true)
	err = h.crs.AddItem(sid, req.ProductId, req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		return
	}
	err = h.crs.RemoveItem(sid, req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		return
	}
	err = h.crs.SetQuantity(sid, req.ProductId, req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		return
	}
	err := h.crs.Clear(sid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	req := models.PaymentMethodRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sid, _ := h.cartSession(w, r, true)
	err = h.crs.SetDiscountAssetSelected(sid, req.UseDiscountToken)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// checkout

func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cks.Start(sid); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCheckoutState(w, sid)
}

func (h *Handler) SelectCheckoutAsset(w http.ResponseWriter, r *http.Request) {
	req := models.PaymentMethodRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err = h.cks.SelectAsset(sid, req.UseDiscountToken); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCheckoutState(w, sid)
}

func (h *Handler) ConnectWallet(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.cks.ConnectWallet(r.Context(), sid); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCheckoutState(w, sid)
}

func (h *Handler) EnterPayment(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cks.EnterPayment(r.Context(), sid); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCheckoutState(w, sid)
}

func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cks.Approve(r.Context(), sid); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCheckoutState(w, sid)
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.cks.Pay(r.Context(), sid); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.writeCheckoutState(w, sid)
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	h.writeCheckoutState(w, sid)
}

func (h *Handler) GetOnrampURL(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	ramp, err := h.cks.OnrampURL(sid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]string{"url": ramp})
}

func (h *Handler) OnrampClosed(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err := h.cks.OnrampClosed(sid); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) writeCheckoutState(w http.ResponseWriter, sid string) {
	state, err := h.cks.State(sid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, state)
}

// admin auth

func (h *Handler) AdminSignin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sessionId, err := h.ads.Signin(creds.Username, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
		// redis 30 min
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("sessionId")
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err = h.ads.Logout(c.Value); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) ManagerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.ads.CheckAccess(sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("CheckAccess: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// cartSession reads the cart-session cookie, minting one when create is set.
func (h *Handler) cartSession(w http.ResponseWriter, r *http.Request, create bool) (string, bool) {
	c, err := r.Cookie("cartSessionId")
	if err == nil {
		return c.Value, true
	}
	if !errors.Is(err, http.ErrNoCookie) {
		log.Printf("Cookie err:%v", err)
	}
	if !create {
		return "", false
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:    "cartSessionId",
		Value:   sid,
		Path:    "/",
		Expires: time.Now().Add(30 * 24 * time.Hour),
	})
	return sid, true
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	var provErr *wallet.ProviderError
	switch {
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnautorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	case errors.Is(err, models.ErrWalletUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrWalletNotConnected):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &provErr):
		// User rejection and network/contract failure arrive the same way.
		http.Error(w, provErr.Message, http.StatusPaymentRequired)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
