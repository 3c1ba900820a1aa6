package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	appcategory "github.com/zmitacart/catalog-api/internal/application/category"
	"github.com/zmitacart/catalog-api/internal/application/dto"
	"github.com/zmitacart/catalog-api/internal/domain/category"
)

// CategoryHandler maneja las peticiones HTTP del árbol de categorías.
// Lecturas públicas; mutaciones solo para administradores.
type CategoryHandler struct {
	tree *appcategory.TreeManager
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(tree *appcategory.TreeManager) *CategoryHandler {
	return &CategoryHandler{tree: tree}
}

// Create godoc
// @Summary      Crear categoría
// @Description  Sin parent_id se crea como raíz. El nombre es único en todo el árbol.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validateStruct(in); details != nil {
		return validationError(c, details)
	}
	id, err := h.tree.Create(c.UserContext(), appcategory.CreateInput{
		Name:     in.Name,
		ParentID: in.ParentID,
		IconName: in.IconName,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Campos ausentes no cambian. parent_id null convierte la categoría en raíz.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validateStruct(in); details != nil {
		return validationError(c, details)
	}

	parent := appcategory.KeepParent()
	if in.ParentID.Set {
		if in.ParentID.Value == nil {
			parent = appcategory.DetachParent()
		} else {
			parent = appcategory.MoveTo(*in.ParentID.Value)
		}
	}
	out, err := h.tree.Update(c.UserContext(), appcategory.UpdateInput{
		ID:       id,
		Name:     in.Name,
		IconName: in.IconName,
		Parent:   parent,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: out})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Los hijos directos pasan a ser raíces.
// @Tags         categories
// @Security     Bearer
// @Param        id   path  int  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.tree.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSuperiors godoc
// @Summary      Listar categorías raíz
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories/superiors [get]
func (h *CategoryHandler) ListSuperiors(c *fiber.Ctx) error {
	nodes, err := h.tree.GetAllSuperiors(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromNodes(nodes))
}

// SuperiorsTree godoc
// @Summary      Raíces con sus descendientes
// @Tags         categories
// @Produce      json
// @Param        depth  query  string  false  "Niveles a incluir: número o all"  default(0)
// @Success      200    {array}   dto.CategoryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/categories/superiors/tree [get]
func (h *CategoryHandler) SuperiorsTree(c *fiber.Ctx) error {
	depth, err := category.ParseDepth(c.Query("depth"), category.None())
	if err != nil {
		return respondError(c, err)
	}
	nodes, err := h.tree.GetSuperiorsWithChildren(c.UserContext(), depth)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromNodes(nodes))
}

// Subtree godoc
// @Summary      Subárbol de una categoría
// @Tags         categories
// @Produce      json
// @Param        id     path   int     true   "ID de la categoría superior"
// @Param        depth  query  string  false  "Niveles a incluir: número o all"  default(all)
// @Success      200    {array}   dto.CategoryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/tree [get]
func (h *CategoryHandler) Subtree(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	depth, err := category.ParseDepth(c.Query("depth"), category.Unlimited())
	if err != nil {
		return respondError(c, err)
	}
	nodes, err := h.tree.GetCategoriesBySuperiorID(c.UserContext(), id, depth)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromNodes(nodes))
}

// parseID lee :id; si es inválido devuelve un *fiber.Error 400 que resuelve ErrorHandler.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id debe ser un entero positivo")
	}
	return id, nil
}
