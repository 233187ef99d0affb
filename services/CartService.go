package services

import (
	"log"

	"merchstore/entities"
	"merchstore/models"
	"merchstore/repository"
)

type CartService struct {
	pr repository.CatalogRepository
	cr repository.CartRepository
}

func NewCartService(catalogRepo repository.CatalogRepository, cartRepo repository.CartRepository) CartService {
	return CartService{
		pr: catalogRepo,
		cr: cartRepo,
	}
}

// AddItem merges into an existing line when the product id matches, else
// appends. The product is copied by value into the line.
func (cs *CartService) AddItem(cartSessionId, productId string, quantity int) (err error) {
	if quantity <= 0 {
		log.Printf("AddItem: non-positive quantity %d", quantity)
		err = models.ErrBadRequest
		return
	}
	p, ex, e := cs.pr.GetById(productId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("AddItem: product does not exist")
		err = models.ErrBadRequest
		return
	}
	if !p.InStock {
		log.Printf("AddItem: product out of stock")
		err = models.ErrNotAllowed
		return
	}
	cart, e := cs.cr.GetCart(cartSessionId)
	if e != nil {
		err = e
		return
	}
	merged := false
	for i := range cart.Lines {
		if cart.Lines[i].Product.Id == productId {
			cart.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Lines = append(cart.Lines, entities.CartLine{Product: p, Quantity: quantity})
	}
	err = cs.cr.SetLines(cartSessionId, cart.Lines)
	return
}

// RemoveItem is a no-op when the line is absent.
func (cs *CartService) RemoveItem(cartSessionId, productId string) (err error) {
	cart, e := cs.cr.GetCart(cartSessionId)
	if e != nil {
		err = e
		return
	}
	kept := cart.Lines[:0]
	for _, l := range cart.Lines {
		if l.Product.Id != productId {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(cart.Lines) {
		return
	}
	err = cs.cr.SetLines(cartSessionId, kept)
	return
}

// SetQuantity with quantity <= 0 removes the line entirely.
func (cs *CartService) SetQuantity(cartSessionId, productId string, quantity int) (err error) {
	if quantity <= 0 {
		return cs.RemoveItem(cartSessionId, productId)
	}
	cart, e := cs.cr.GetCart(cartSessionId)
	if e != nil {
		err = e
		return
	}
	for i := range cart.Lines {
		if cart.Lines[i].Product.Id == productId {
			cart.Lines[i].Quantity = quantity
			err = cs.cr.SetLines(cartSessionId, cart.Lines)
			return
		}
	}
	return
}

func (cs *CartService) Clear(cartSessionId string) (err error) {
	err = cs.cr.SetLines(cartSessionId, []entities.CartLine{})
	return
}

func (cs *CartService) SetDiscountAssetSelected(cartSessionId string, useDiscountToken bool) (err error) {
	err = cs.cr.SetDiscount(cartSessionId, useDiscountToken)
	return
}

func (cs *CartService) GetCart(cartSessionId string) (cart entities.Cart, err error) {
	cart, err = cs.cr.GetCart(cartSessionId)
	return
}

func (cs *CartService) GetCartResponse(cartSessionId string) (resp models.CartResponse, err error) {
	cart, e := cs.cr.GetCart(cartSessionId)
	if e != nil {
		err = e
		return
	}
	resp = models.CartResponse{
		Lines:            cart.Lines,
		Subtotal:         cart.Subtotal(),
		Discount:         cart.Discount(),
		Total:            cart.Total(),
		UseDiscountToken: cart.UseDiscountToken,
	}
	return
}
