package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/onestop/laundry-dashboard-api/infrastructure/database/postgres"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const appointmentsTable = "appointments"

type AppointmentRepository interface {
	SaveBatch(appointments []*domain.Appointment) (int, error)
	ListAppointments() ([]*domain.Appointment, error)
	CountAppointments() (int, error)
}

type appointmentRepository struct {
	conn *postgres.Connection
}

func NewAppointmentRepository(conn *postgres.Connection) AppointmentRepository {
	return &appointmentRepository{
		conn: conn,
	}
}

// SaveBatch insere ou atualiza um lote de agendamentos. Registros sem
// appointmentId são ignorados com warning, igual ao restante do pipeline.
// Retorna quantos registros entraram de fato no batch.
func (r *appointmentRepository) SaveBatch(appointments []*domain.Appointment) (int, error) {
	if len(appointments) == 0 {
		return 0, nil
	}

	query := squirrel.StatementBuilder.
		Insert(appointmentsTable).
		Columns("appointment_id", "customer_id", "customer_type", "city_id", "status", "invoice_total", "payload").
		PlaceholderFormat(squirrel.Dollar)

	inserted := 0
	for _, appointment := range appointments {
		if appointment == nil || appointment.AppointmentID == "" {
			logrus.Warn("Agendamento sem appointmentId ignorado no batch")
			continue
		}

		payload, err := json.Marshal(appointment)
		if err != nil {
			logrus.Warnf("Falha ao serializar agendamento %s: %v", appointment.AppointmentID, err)
			continue
		}

		query = query.Values(
			appointment.AppointmentID,
			appointment.CustomerID,
			appointment.CustomerType,
			rawCityID(appointment),
			appointment.Status,
			appointment.ResolveRevenue(),
			payload,
		)
		inserted++
	}

	if inserted == 0 {
		return 0, nil
	}

	query = query.Suffix(`
			ON CONFLICT (appointment_id) DO UPDATE SET
				customer_id = EXCLUDED.customer_id,
				customer_type = EXCLUDED.customer_type,
				city_id = EXCLUDED.city_id,
				status = EXCLUDED.status,
				invoice_total = EXCLUDED.invoice_total,
				payload = EXCLUDED.payload
		`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return inserted, nil
}

// ListAppointments devolve todos os agendamentos persistidos, reconstruídos
// a partir do payload completo
func (r *appointmentRepository) ListAppointments() ([]*domain.Appointment, error) {
	listSQL, listArgs, err := squirrel.
		Select("payload").
		From(appointmentsTable).
		OrderBy("appointment_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(listSQL, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}

		appointment := &domain.Appointment{}
		if err := json.Unmarshal(payload, appointment); err != nil {
			logrus.Warnf("Payload de agendamento inválido ignorado: %v", err)
			continue
		}

		appointments = append(appointments, appointment)
	}

	return appointments, rows.Err()
}

// rawCityID preserva o identificador de cidade como veio na origem, sem
// normalizar contra a tabela de cidades. A normalização acontece na leitura.
func rawCityID(a *domain.Appointment) string {
	for _, candidate := range []string{a.CityID, a.CityIDLegacy, a.City} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func (r *appointmentRepository) CountAppointments() (int, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(appointmentsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
