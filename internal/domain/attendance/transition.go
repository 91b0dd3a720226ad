package attendance

import "github.com/jhoicas/asistencia-api/internal/domain/entity"

// NextAction función de transición de la máquina de dos estados por empleado.
// Sin marcación previa (lastAction vacío) o tras una salida corresponde entrada; tras una entrada, salida.
// No existen entradas múltiples sin una salida intermedia ni salidas automáticas.
func NextAction(lastAction string) string {
	if lastAction == entity.ActionCheckIn {
		return entity.ActionCheckOut
	}
	return entity.ActionCheckIn
}

// NextActionAfter aplica NextAction sobre el último evento (nil = sin historial).
func NextActionAfter(last *entity.AttendanceEvent) string {
	if last == nil {
		return NextAction("")
	}
	return NextAction(last.Action)
}
