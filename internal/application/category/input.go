package category

// CreateInput datos para crear una categoría.
type CreateInput struct {
	Name     string
	ParentID *int64 // nil crea una raíz
	IconName *string
}

// ParentChange describe qué hacer con el padre en una actualización.
// Set=false deja el padre como está; Set=true con ID nil la convierte en raíz.
type ParentChange struct {
	Set bool
	ID  *int64
}

// KeepParent no modifica el padre.
func KeepParent() ParentChange { return ParentChange{} }

// DetachParent convierte la categoría en raíz.
func DetachParent() ParentChange { return ParentChange{Set: true} }

// MoveTo reasigna la categoría bajo parentID.
func MoveTo(parentID int64) ParentChange { return ParentChange{Set: true, ID: &parentID} }

// UpdateInput datos para actualizar una categoría. Los campos nil no se modifican.
type UpdateInput struct {
	ID       int64
	Name     *string
	IconName *string // "" elimina el icono
	Parent   ParentChange
}
