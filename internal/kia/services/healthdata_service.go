package services

import (
	"database/sql"
	"time"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

// HealthDataService melayani jenis data kesehatan generik lama. Policy-nya
// mengikuti modul aslinya: edit boleh selagi PENDING dan verifikasi hanya
// oleh bidan desa; perbedaan itu dibawa oleh workflow.KindHealthData, bukan
// di-hardcode di sini.
type HealthDataService struct {
	DB *sql.DB
}

func NewHealthDataService(db *sql.DB) *HealthDataService {
	return &HealthDataService{DB: db}
}

func (s *HealthDataService) fetchRef(id int) (workflow.RecordRef, error) {
	var ref workflow.RecordRef
	var status string
	query := `
		SELECT hd.Status_Verifikasi, hd.ID_Tempat_Praktik, tp.ID_User, tp.ID_Desa
		FROM Health_Data hd
		JOIN Tempat_Praktik tp ON hd.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE hd.ID_Health_Data = ?
	`
	err := s.DB.QueryRow(query, id).Scan(&status, &ref.PracticeID, &ref.OwnerUserID, &ref.VillageID)
	if err == sql.ErrNoRows {
		return ref, workflow.ErrNotFound
	}
	if err != nil {
		return ref, err
	}
	ref.Status = workflow.Status(status)
	return ref, nil
}

func (s *HealthDataService) Create(actor workflow.Actor, req models.HealthDataRequest) (int64, error) {
	if err := workflow.AuthorizeCreate(actor); err != nil {
		return 0, err
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	practiceID, err := resolvePracticeID(s.DB, actor, req.PracticeID)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO Health_Data
			(Nama_Pasien, Umur_Pasien, Jenis_Data, ID_Tempat_Praktik, Tanggal_Periksa, Catatan,
			 Status_Verifikasi, Revisi_Ke, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, 'PENDING', 0, ?)
	`
	result, err := s.DB.Exec(query,
		req.NamaPasien, req.UmurPasien, req.JenisData, practiceID, req.TanggalPeriksa, req.Catatan,
		time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *HealthDataService) List(actor workflow.Actor, filter ListFilter) ([]models.HealthData, error) {
	if !workflow.CanViewKind(workflow.KindHealthData, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}
	filter.normalize()

	query := `
		SELECT hd.ID_Health_Data, hd.Nama_Pasien, hd.Umur_Pasien, hd.Jenis_Data,
			hd.ID_Tempat_Praktik, hd.Tanggal_Periksa, hd.Catatan,
			hd.Status_Verifikasi, hd.Alasan_Penolakan, hd.Verified_By, hd.Verified_At, hd.Revisi_Ke
		FROM Health_Data hd
		JOIN Tempat_Praktik tp ON hd.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE 1=1
	`
	var args []interface{}

	scope, scopeArgs, err := recordScope(actor)
	if err != nil {
		return nil, err
	}
	query += scope
	args = append(args, scopeArgs...)

	if filter.Status != "" {
		status, err := workflow.ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		query += " AND hd.Status_Verifikasi = ?"
		args = append(args, string(status))
	}
	if filter.Month != 0 {
		query += " AND MONTH(hd.Tanggal_Periksa) = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND YEAR(hd.Tanggal_Periksa) = ?"
		args = append(args, filter.Year)
	}
	if filter.VillageID != 0 {
		query += " AND tp.ID_Desa = ?"
		args = append(args, filter.VillageID)
	}
	if filter.Search != "" {
		query += " AND hd.Nama_Pasien LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY hd.Tanggal_Periksa DESC, hd.ID_Health_Data DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.HealthData
	for rows.Next() {
		var m models.HealthData
		var catatan, alasan sql.NullString
		var verifiedBy sql.NullInt64
		var verifiedAt sql.NullTime

		if err := rows.Scan(&m.ID, &m.NamaPasien, &m.UmurPasien, &m.JenisData,
			&m.PracticeID, &m.TanggalPeriksa, &catatan,
			&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe); err != nil {
			return nil, err
		}
		if catatan.Valid {
			m.Catatan = catatan.String
		}
		applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
		result = append(result, m)
	}
	return result, rows.Err()
}

// ListRejected mengembalikan antrean revisi milik aktor (endpoint
// /health-data-rejected pada aplikasi lama).
func (s *HealthDataService) ListRejected(actor workflow.Actor) ([]models.HealthData, error) {
	return s.List(actor, ListFilter{Status: string(workflow.StatusRejected)})
}

func (s *HealthDataService) GetByID(actor workflow.Actor, id int) (*models.HealthData, error) {
	if !workflow.CanViewKind(workflow.KindHealthData, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}

	query := `
		SELECT hd.ID_Health_Data, hd.Nama_Pasien, hd.Umur_Pasien, hd.Jenis_Data,
			hd.ID_Tempat_Praktik, hd.Tanggal_Periksa, hd.Catatan,
			hd.Status_Verifikasi, hd.Alasan_Penolakan, hd.Verified_By, hd.Verified_At, hd.Revisi_Ke,
			tp.Nama, tp.ID_User, tp.ID_Desa
		FROM Health_Data hd
		JOIN Tempat_Praktik tp ON hd.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE hd.ID_Health_Data = ?
	`
	var m models.HealthData
	var catatan, alasan sql.NullString
	var verifiedBy sql.NullInt64
	var verifiedAt sql.NullTime
	tpRef := models.TempatPraktikRef{}

	err := s.DB.QueryRow(query, id).Scan(&m.ID, &m.NamaPasien, &m.UmurPasien, &m.JenisData,
		&m.PracticeID, &m.TanggalPeriksa, &catatan,
		&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe,
		&tpRef.Nama, &tpRef.UserID, &tpRef.VillageID)
	if err == sql.ErrNoRows {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if catatan.Valid {
		m.Catatan = catatan.String
	}
	applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
	tpRef.PracticeID = m.PracticeID
	m.TempatPraktik = &tpRef
	return &m, nil
}

func (s *HealthDataService) Update(actor workflow.Actor, id int, req models.HealthDataRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	effect, err := workflow.AuthorizeUpdate(workflow.KindHealthData, actor, ref)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE Health_Data SET
			Nama_Pasien = ?, Umur_Pasien = ?, Jenis_Data = ?, Tanggal_Periksa = ?, Catatan = ?,
			Status_Verifikasi = ?,
			Alasan_Penolakan = IF(?, NULL, Alasan_Penolakan),
			Verified_By = IF(?, NULL, Verified_By),
			Verified_At = IF(?, NULL, Verified_At),
			Revisi_Ke = Revisi_Ke + ?
		WHERE ID_Health_Data = ? AND Status_Verifikasi = ?
	`
	increment := 0
	if effect.IncrementRevisi {
		increment = 1
	}
	result, err := s.DB.Exec(query,
		req.NamaPasien, req.UmurPasien, req.JenisData, req.TanggalPeriksa, req.Catatan,
		string(effect.NewStatus),
		effect.ClearAlasan, effect.ClearAlasan, effect.ClearAlasan,
		increment,
		id, string(ref.Status),
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *HealthDataService) Delete(actor workflow.Actor, id int) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeDelete(actor, ref); err != nil {
		return err
	}

	result, err := s.DB.Exec(
		"DELETE FROM Health_Data WHERE ID_Health_Data = ? AND Status_Verifikasi IN ('PENDING','REJECTED')", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *HealthDataService) Verify(actor workflow.Actor, id int, req models.VerifyRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	decision, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeVerify(workflow.KindHealthData, actor, ref, decision, req.Alasan); err != nil {
		return err
	}

	result, err := s.DB.Exec(`
		UPDATE Health_Data
		SET Status_Verifikasi = ?, Alasan_Penolakan = ?, Verified_By = ?, Verified_At = ?
		WHERE ID_Health_Data = ? AND Status_Verifikasi = 'PENDING'
	`, string(decision), rejectionReason(decision, req.Alasan), actorUserID(actor), time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
