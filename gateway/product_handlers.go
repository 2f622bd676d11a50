package gateway

import (
	"net/http"
	"strconv"

	"github.com/example/storefront/pkg/service"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (g *Gateway) listProducts(c *gin.Context) {
	filter := service.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}

	if v := c.Query("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}

	products, err := g.products.List(c.Request.Context(), filter)
	if err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (g *Gateway) getProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	product, err := g.products.Get(c.Request.Context(), id)
	if err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) listCategories(c *gin.Context) {
	categories, err := g.products.Categories(c.Request.Context())
	if err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

type reviewRequest struct {
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

func (g *Gateway) addReview(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var req reviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating is required"})
		return
	}

	// The review is attributed to the authenticated caller, not a
	// free-text user field.
	user := currentUser(c)
	product, err := g.products.AddReview(c.Request.Context(), id, user.Name, req.Comment, req.Rating)
	if err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
