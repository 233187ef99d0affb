package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"merchstore/entities"
	"merchstore/models"

	"github.com/redis/go-redis/v9"
)

// Two keys per cart session: the full line list and the discount flag.
// Each write serializes full current state, never a delta.
const (
	cartKeyPrefix     = "cart:"
	discountKeyPrefix = "cartDiscount:"
)

type CartRepository interface {
	GetCart(cartSessionId string) (cart entities.Cart, err error)
	SetLines(cartSessionId string, lines []entities.CartLine) (err error)
	SetDiscount(cartSessionId string, useDiscountToken bool) (err error)
}

type CartRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewCartRepository(redis_conn *redis.Client, _ctx context.Context) (CartRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CartRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

// GetCart rehydrates both keys. A missing key or garbage payload means an
// empty cart / false flag, never an error.
func (c *CartRepo) GetCart(cartSessionId string) (cart entities.Cart, err error) {
	cart.Lines = []entities.CartLine{}
	val, e := c.rdb.Get(c.ctx, cartKeyPrefix+cartSessionId).Result()
	if e != nil && e != redis.Nil {
		log.Printf("GetCart: %v", e)
		err = models.ErrServerError
		return
	}
	if e == nil {
		lines, e2 := unmarshalCartLines([]byte(val))
		if e2 != nil {
			log.Printf("GetCart: Unmarshal: %v", e2)
		} else {
			cart.Lines = lines
		}
	}
	flag, e := c.rdb.Get(c.ctx, discountKeyPrefix+cartSessionId).Result()
	if e != nil {
		if e != redis.Nil {
			log.Printf("GetCart: %v", e)
			err = models.ErrServerError
		}
		return
	}
	cart.UseDiscountToken = flag == "true"
	return
}

func (c *CartRepo) SetLines(cartSessionId string, lines []entities.CartLine) (err error) {
	jsonData, err := marshalCartLines(lines)
	if err != nil {
		log.Printf("SetLines: Marshal: %v", err)
		err = models.ErrServerError
		return
	}
	err = c.rdb.Set(c.ctx, cartKeyPrefix+cartSessionId, jsonData, 0).Err()
	if err != nil {
		log.Printf("SetLines: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CartRepo) SetDiscount(cartSessionId string, useDiscountToken bool) (err error) {
	err = c.rdb.Set(c.ctx, discountKeyPrefix+cartSessionId, strconv.FormatBool(useDiscountToken), 0).Err()
	if err != nil {
		log.Printf("SetDiscount: %v", err)
		err = models.ErrServerError
	}
	return
}

func marshalCartLines(lines []entities.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []entities.CartLine{}
	}
	return json.Marshal(lines)
}

func unmarshalCartLines(data []byte) ([]entities.CartLine, error) {
	var lines []entities.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []entities.CartLine{}
	}
	return lines, nil
}
