package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (g *Gateway) getCart(c *gin.Context) {
	items, err := g.carts.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int32  `json:"quantity" binding:"required"`
}

func (g *Gateway) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "product_id and quantity are required"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	item, err := g.carts.Add(c.Request.Context(), currentUserID(c), productID, req.Quantity)
	if err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity" binding:"required"`
}

func (g *Gateway) updateCartItem(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	var req updateCartItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity is required"})
		return
	}

	item, err := g.carts.UpdateQuantity(c.Request.Context(), currentUserID(c), itemID, req.Quantity)
	if err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (g *Gateway) removeCartItem(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	if err := g.carts.Remove(c.Request.Context(), currentUserID(c), itemID); err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (g *Gateway) clearCart(c *gin.Context) {
	if err := g.carts.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		g.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
