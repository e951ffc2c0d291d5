package services

import (
	"database/sql"
	"time"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type KBService struct {
	DB *sql.DB
}

func NewKBService(db *sql.DB) *KBService {
	return &KBService{DB: db}
}

func (s *KBService) fetchRef(id int) (workflow.RecordRef, error) {
	var ref workflow.RecordRef
	var status string
	query := `
		SELECT kb.Status_Verifikasi, kb.ID_Tempat_Praktik, tp.ID_User, tp.ID_Desa
		FROM Keluarga_Berencana kb
		JOIN Tempat_Praktik tp ON kb.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE kb.ID_KB = ?
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

func (s *KBService) Create(actor workflow.Actor, req models.KBRequest) (int64, error) {
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

	var exists int
	err = s.DB.QueryRow("SELECT ID_Pasien FROM Pasien WHERE ID_Pasien = ?", req.PasienID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, workflow.Validationf("pasien tidak ditemukan")
	}
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO Keluarga_Berencana
			(ID_Pasien, ID_Tempat_Praktik, Tanggal_Kunjungan, Alat_Kontrasepsi,
			 Jumlah_Anak_Laki, Jumlah_Anak_Perempuan, AT, Keterangan,
			 Status_Verifikasi, Revisi_Ke, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'PENDING', 0, ?)
	`
	result, err := s.DB.Exec(query,
		req.PasienID, practiceID, req.TanggalKunjungan, req.AlatKontrasepsi,
		req.JumlahAnakLaki, req.JumlahAnakPerempuan, req.AT, req.Keterangan,
		time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *KBService) List(actor workflow.Actor, filter ListFilter) ([]models.KeluargaBerencana, error) {
	if !workflow.CanViewKind(workflow.KindKB, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}
	filter.normalize()

	query := `
		SELECT kb.ID_KB, kb.ID_Pasien, p.Nama, kb.ID_Tempat_Praktik,
			kb.Tanggal_Kunjungan, kb.Alat_Kontrasepsi,
			kb.Jumlah_Anak_Laki, kb.Jumlah_Anak_Perempuan, kb.AT, kb.Keterangan,
			kb.Status_Verifikasi, kb.Alasan_Penolakan, kb.Verified_By, kb.Verified_At, kb.Revisi_Ke
		FROM Keluarga_Berencana kb
		JOIN Pasien p ON kb.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON kb.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
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
		query += " AND kb.Status_Verifikasi = ?"
		args = append(args, string(status))
	}
	if filter.Month != 0 {
		query += " AND MONTH(kb.Tanggal_Kunjungan) = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND YEAR(kb.Tanggal_Kunjungan) = ?"
		args = append(args, filter.Year)
	}
	if filter.VillageID != 0 {
		query += " AND tp.ID_Desa = ?"
		args = append(args, filter.VillageID)
	}
	if filter.Search != "" {
		query += " AND p.Nama LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY kb.Tanggal_Kunjungan DESC, kb.ID_KB DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.KeluargaBerencana
	for rows.Next() {
		var m models.KeluargaBerencana
		var keterangan, alasan sql.NullString
		var verifiedBy sql.NullInt64
		var verifiedAt sql.NullTime

		if err := rows.Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
			&m.TanggalKunjungan, &m.AlatKontrasepsi,
			&m.JumlahAnakLaki, &m.JumlahAnakPerempuan, &m.AT, &keterangan,
			&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe); err != nil {
			return nil, err
		}
		if keterangan.Valid {
			m.Keterangan = keterangan.String
		}
		applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *KBService) GetByID(actor workflow.Actor, id int) (*models.KeluargaBerencana, error) {
	if !workflow.CanViewKind(workflow.KindKB, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}

	query := `
		SELECT kb.ID_KB, kb.ID_Pasien, p.Nama, kb.ID_Tempat_Praktik,
			kb.Tanggal_Kunjungan, kb.Alat_Kontrasepsi,
			kb.Jumlah_Anak_Laki, kb.Jumlah_Anak_Perempuan, kb.AT, kb.Keterangan,
			kb.Status_Verifikasi, kb.Alasan_Penolakan, kb.Verified_By, kb.Verified_At, kb.Revisi_Ke,
			tp.Nama, tp.ID_User, tp.ID_Desa
		FROM Keluarga_Berencana kb
		JOIN Pasien p ON kb.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON kb.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE kb.ID_KB = ?
	`
	var m models.KeluargaBerencana
	var keterangan, alasan sql.NullString
	var verifiedBy sql.NullInt64
	var verifiedAt sql.NullTime
	tpRef := models.TempatPraktikRef{}

	err := s.DB.QueryRow(query, id).Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
		&m.TanggalKunjungan, &m.AlatKontrasepsi,
		&m.JumlahAnakLaki, &m.JumlahAnakPerempuan, &m.AT, &keterangan,
		&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe,
		&tpRef.Nama, &tpRef.UserID, &tpRef.VillageID)
	if err == sql.ErrNoRows {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if keterangan.Valid {
		m.Keterangan = keterangan.String
	}
	applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
	tpRef.PracticeID = m.PracticeID
	m.TempatPraktik = &tpRef
	return &m, nil
}

func (s *KBService) Update(actor workflow.Actor, id int, req models.KBRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	effect, err := workflow.AuthorizeUpdate(workflow.KindKB, actor, ref)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE Keluarga_Berencana SET
			ID_Pasien = ?, Tanggal_Kunjungan = ?, Alat_Kontrasepsi = ?,
			Jumlah_Anak_Laki = ?, Jumlah_Anak_Perempuan = ?, AT = ?, Keterangan = ?,
			Status_Verifikasi = ?,
			Alasan_Penolakan = IF(?, NULL, Alasan_Penolakan),
			Verified_By = IF(?, NULL, Verified_By),
			Verified_At = IF(?, NULL, Verified_At),
			Revisi_Ke = Revisi_Ke + ?
		WHERE ID_KB = ? AND Status_Verifikasi = ?
	`
	increment := 0
	if effect.IncrementRevisi {
		increment = 1
	}
	result, err := s.DB.Exec(query,
		req.PasienID, req.TanggalKunjungan, req.AlatKontrasepsi,
		req.JumlahAnakLaki, req.JumlahAnakPerempuan, req.AT, req.Keterangan,
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

func (s *KBService) Delete(actor workflow.Actor, id int) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeDelete(actor, ref); err != nil {
		return err
	}

	result, err := s.DB.Exec(
		"DELETE FROM Keluarga_Berencana WHERE ID_KB = ? AND Status_Verifikasi IN ('PENDING','REJECTED')", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *KBService) Verify(actor workflow.Actor, id int, req models.VerifyRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	decision, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeVerify(workflow.KindKB, actor, ref, decision, req.Alasan); err != nil {
		return err
	}

	result, err := s.DB.Exec(`
		UPDATE Keluarga_Berencana
		SET Status_Verifikasi = ?, Alasan_Penolakan = ?, Verified_By = ?, Verified_At = ?
		WHERE ID_KB = ? AND Status_Verifikasi = 'PENDING'
	`, string(decision), rejectionReason(decision, req.Alasan), actorUserID(actor), time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
