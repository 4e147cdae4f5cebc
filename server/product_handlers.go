package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jrsteele09/go-storefront-api/auth"
	"github.com/jrsteele09/go-storefront-api/products"
)

func (s *Server) CreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in products.ProductInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}

		var actor string
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			actor = claims.SubjectID
		}

		product, err := s.products.Create(r.Context(), in, actor)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "product created", product)
	}
}

func (s *Server) ListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.products.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if list == nil {
			list = []*products.Product{}
		}
		writeJSON(w, http.StatusOK, "products retrieved", list)
	}
}

func (s *Server) GetProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.products.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "product retrieved", product)
	}
}

func (s *Server) UpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update products.ProductUpdate
		if err := decodeJSON(w, r, &update); err != nil {
			writeError(w, r, err)
			return
		}
		update.UpdatedBy = nil
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			update.UpdatedBy = &claims.SubjectID
		}

		product, err := s.products.Update(r.Context(), chi.URLParam(r, "id"), update)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "product updated", product)
	}
}

func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.products.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "product deleted", product)
	}
}
