package database

import "sync"

// Los mutadores de stock hacen leer-luego-escribir sobre el contador del
// producto; sin serialización, dos requests simultáneos sobre el mismo
// producto pueden pisarse la actualización. Un mutex por producto alcanza
// para el modelo de un solo proceso.
var (
	productLocksMu sync.Mutex
	productLocks   = make(map[uint]*sync.Mutex)
)

// LockProducto serializa las mutaciones de stock de un producto. Devuelve la
// función de unlock para usar con defer.
func LockProducto(productoID uint) func() {
	productLocksMu.Lock()
	l, ok := productLocks[productoID]
	if !ok {
		l = &sync.Mutex{}
		productLocks[productoID] = l
	}
	productLocksMu.Unlock()

	l.Lock()
	return l.Unlock
}
