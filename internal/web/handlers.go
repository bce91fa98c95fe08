package web

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/images"
	models "storefront/internal/models"
	"storefront/internal/shop"
	"storefront/internal/store"
)

type handlers struct {
	st  store.Store
	reg *registry
}

func current(c *gin.Context) *visitor {
	return c.MustGet(visitorCtx).(*visitor)
}

// respond добавляет к ответу накопленные уведомления
func respond(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["notifications"] = current(c).inbox.Drain()
	c.JSON(status, body)
}

// fail переводит вид ошибки в http-статус
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case shop.IsValidation(err):
		status = http.StatusBadRequest
	case shop.IsAuth(err):
		status = http.StatusUnauthorized
	case shop.IsCapacity(err):
		status = http.StatusConflict
	case shop.IsNotFound(err):
		status = http.StatusNotFound
	}
	respond(c, status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	respond(c, http.StatusBadRequest, gin.H{"error": msg})
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "bad product id")
		return 0, false
	}
	return id, true
}

func (h *handlers) health(c *gin.Context) {
	if p, ok := h.st.(Pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "visitors": h.reg.len()})
}

// ---------- catalog ----------

func (h *handlers) listProducts(c *gin.Context) {
	cat := models.CategoryAll
	if raw := strings.TrimSpace(c.Query("category")); raw != "" && !strings.EqualFold(raw, string(models.CategoryAll)) {
		parsed, ok := models.ParseCategory(raw)
		if !ok {
			badRequest(c, "unknown category "+raw)
			return
		}
		cat = parsed
	}
	items, err := current(c).app.FilterByCategory(c.Request.Context(), cat)
	if err != nil {
		fail(c, err)
		return
	}
	q := c.Query("q")
	out := []models.Product{}
	for _, p := range items {
		if p.Matches(q) {
			out = append(out, p)
		}
	}
	respond(c, http.StatusOK, gin.H{"items": out})
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	p, err := current(c).app.Product(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"item": p})
}

// ---------- cart ----------

func cartBody(app *shop.App) gin.H {
	return gin.H{
		"lines":         app.CartLines(),
		"count":         app.CartCount(),
		"total":         app.CartTotal(),
		"display_total": app.CartDisplayTotal(),
	}
}

func (h *handlers) getCart(c *gin.Context) {
	respond(c, http.StatusOK, cartBody(current(c).app))
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *handlers) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	app := current(c).app
	if err := app.AddToCart(c.Request.Context(), req.ProductID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, cartBody(app))
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	app := current(c).app
	app.UpdateQuantity(id, *req.Quantity)
	respond(c, http.StatusOK, cartBody(app))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	app := current(c).app
	app.RemoveFromCart(id)
	respond(c, http.StatusOK, cartBody(app))
}

// ---------- auth ----------

type registerRequest struct {
	Email               string `json:"email" binding:"required"`
	Password            string `json:"password" binding:"required"`
	ConfirmPassword     string `json:"confirm_password" binding:"required"`
	BusinessName        string `json:"business_name" binding:"required"`
	BusinessDescription string `json:"business_description"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Fill all fields")
		return
	}
	u, err := current(c).app.Register(c.Request.Context(), shop.RegisterForm{
		Email:               req.Email,
		Password:            req.Password,
		ConfirmPassword:     req.ConfirmPassword,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"user": publicUser(&u)})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Fill all fields")
		return
	}
	u, err := current(c).app.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": publicUser(&u)})
}

func (h *handlers) logout(c *gin.Context) {
	if err := current(c).app.Logout(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (h *handlers) me(c *gin.Context) {
	app := current(c).app
	respond(c, http.StatusOK, gin.H{
		"user":       publicUser(app.CurrentUser()),
		"cart_count": app.CartCount(),
	})
}

// publicUser — пользователь без пароля
func publicUser(u *models.User) gin.H {
	if u == nil {
		return nil
	}
	return gin.H{
		"id":                   u.ID,
		"email":                u.Email,
		"business_name":        u.BusinessName,
		"business_description": u.BusinessDescription,
		"created_at":           u.CreatedAt,
	}
}

// ---------- seller area ----------

func (h *handlers) sellerProducts(c *gin.Context) {
	items, err := current(c).app.SellerProducts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"items": items})
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Stock       string `json:"stock"`
	Icon        string `json:"icon"`
}

func (h *handlers) addProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := current(c).app.AddProduct(c.Request.Context(), shop.ProductForm{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Icon:        req.Icon,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"item": p})
}

type stockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

func (h *handlers) updateStock(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := current(c).app.UpdateStock(c.Request.Context(), id, *req.Stock); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := current(c).app.DeleteProduct(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (h *handlers) listImages(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"images": current(c).app.Images()})
}

func (h *handlers) uploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "no image selected")
		return
	}
	f, err := file.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, images.MaxFileBytes+1))
	if err != nil {
		fail(c, err)
		return
	}
	app := current(c).app
	if err := app.SelectImageFile(data); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"count": len(app.Images())})
}

func (h *handlers) removeImage(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "bad image index")
		return
	}
	app := current(c).app
	if err := app.RemoveImage(i); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"count": len(app.Images())})
}

func (h *handlers) cancelImages(c *gin.Context) {
	current(c).app.CancelProductForm()
	respond(c, http.StatusOK, gin.H{"count": 0})
}
