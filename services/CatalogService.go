package services

import (
	"log"

	"merchstore/entities"
	"merchstore/models"
	"merchstore/repository"
)

type CatalogService struct {
	pr repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return CatalogService{
		pr: catalogRepo,
	}
}

func (ps *CatalogService) GetAll() ([]entities.Product, error) {
	return ps.pr.GetAll()
}

func (ps *CatalogService) GetFeatured() ([]entities.Product, error) {
	return ps.pr.GetFeatured()
}

func (ps *CatalogService) GetByCategory(categoryId string) (prods []entities.Product, err error) {
	if !entities.ValidCategory(categoryId) {
		err = models.ErrNotFoundError
		return
	}
	prods, err = ps.pr.GetByCategory(categoryId)
	return
}

func (ps *CatalogService) GetProduct(id string) (prod entities.Product, err error) {
	prod, ex, e := ps.pr.GetById(id)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFoundError
	}
	return
}

// admin edits

func (ps *CatalogService) CreateProduct(prod entities.Product) (err error) {
	if err = validateProduct(prod); err != nil {
		return
	}
	_, ex, e := ps.pr.GetById(prod.Id)
	if e != nil {
		err = e
		return
	}
	if ex {
		log.Printf("CreateProduct: id already taken")
		err = models.ErrNotAllowed
		return
	}
	err = ps.pr.Create(prod)
	return
}

func (ps *CatalogService) UpdateProduct(prod entities.Product) (updated entities.Product, err error) {
	if err = validateProduct(prod); err != nil {
		return
	}
	updated, err = ps.pr.Update(prod)
	return
}

func (ps *CatalogService) DeleteProduct(id string) (err error) {
	err = ps.pr.Delete(id)
	return
}

func validateProduct(prod entities.Product) error {
	if prod.Id == "" || prod.Name == "" {
		log.Printf("validateProduct: missing id or name")
		return models.ErrBadRequest
	}
	if prod.Price < 0 {
		log.Printf("validateProduct: negative price")
		return models.ErrBadRequest
	}
	if !entities.ValidCategory(prod.CategoryId) {
		log.Printf("validateProduct: unknown category %q", prod.CategoryId)
		return models.ErrBadRequest
	}
	return nil
}
