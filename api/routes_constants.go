package api

import (
	"fmt"
	"net/url"
)

// Backend endpoint paths, relative to the configured API URL
const (
	// Auth
	RouteAuthLogin          = "auth/login"
	RouteAuthRegister       = "auth/register"
	RouteAuthMe             = "auth/me"
	RouteAuthRefresh        = "auth/refresh"
	RouteAuthForgotPassword = "auth/forgot-password"
	RouteAuthResetPassword  = "auth/reset-password"
	RouteAuthVerifyEmail    = "auth/verify-email"
	RouteAuthProfile        = "auth/profile"
	RouteAuthChangePassword = "auth/change-password"

	// Admin
	RouteAdminDashboard    = "admin/dashboard/stats"
	RouteAdminImportUsers  = "admin/import/users"
	RouteAdminExportUsers  = "admin/export/users"
	RouteAdminSystemStatus = "admin/system/status"

	// Users
	RouteUsers            = "users"
	RouteUsersBatchStatus = "users/batch/status"
	RouteUsersBatchDelete = "users/batch/delete"
	RouteUsersTeachers    = "users/teachers"

	// Academic structure
	RouteEstablishments = "structure/establishments"
	RouteModules        = "structure/modules"
	RouteSubjects       = "structure/subjects"
	RouteClasses        = "structure/classes"
	RouteSemesters      = "structure/semesters"
	RouteEnroll         = "structure/enroll"

	// Attendance
	RouteAttendanceMark      = "presences/marquer"
	RouteAttendanceMarkBatch = "presences/marquer/batch"

	// Evaluations
	RouteExams          = "evaluations/exams"
	RouteGrades         = "evaluations/grades"
	RouteGradesBatch    = "evaluations/grades/batch"
	RouteGradesPublish  = "evaluations/publish"
	RouteGradesValidate = "evaluations/validate"

	// Schedule
	RouteRooms     = "emploidutemps/salles"
	RouteTimeSlots = "emploidutemps/creneaux"
	RoutePlannings = "emploidutemps/plannings"

	// Assignments
	RouteAssignments = "travaux/devoirs"

	// Resources
	RouteResources = "ressources"

	// Communications
	RouteMessages = "communications/messages"

	// Logbook
	RouteLogbookSessions = "cahier-texte/seances"

	// Report cards
	RouteBulletinsGenerate       = "bulletins/generer"
	RouteBulletinsCalculateRanks = "bulletins/calculer-rangs"

	// Storage
	RouteStorageUpload = "stockage/upload"
)

func RouteUser(id int64) string       { return fmt.Sprintf("users/%d", id) }
func RouteUserStatus(id int64) string { return fmt.Sprintf("users/%d/status", id) }
func RouteUserRole(id int64) string   { return fmt.Sprintf("users/%d/role", id) }

func RouteEstablishment(id int64) string { return fmt.Sprintf("structure/establishments/%d", id) }
func RouteModule(id int64) string        { return fmt.Sprintf("structure/modules/%d", id) }
func RouteClassModules(id int64) string  { return fmt.Sprintf("structure/classes/%d/modules", id) }
func RouteSubject(id int64) string       { return fmt.Sprintf("structure/subjects/%d", id) }
func RouteClassSubjects(id int64) string { return fmt.Sprintf("structure/classes/%d/subjects", id) }
func RouteModuleSubjects(id int64) string {
	return fmt.Sprintf("structure/modules/%d/subjects", id)
}
func RouteSubjectModule(id int64) string { return fmt.Sprintf("structure/subjects/%d/module", id) }
func RouteClass(id int64) string         { return fmt.Sprintf("structure/classes/%d", id) }
func RouteClassStudents(id int64) string { return fmt.Sprintf("structure/classes/%d/students", id) }
func RouteSemester(id int64) string      { return fmt.Sprintf("structure/semesters/%d", id) }

func RouteAttendanceJustify(id int64) string { return fmt.Sprintf("presences/%d/justifier", id) }
func RouteAttendanceValidate(id int64) string {
	return fmt.Sprintf("presences/%d/valider-justificatif", id)
}
func RouteAttendanceStudentStats(id int64) string {
	return fmt.Sprintf("presences/stats/etudiant/%d", id)
}
func RouteAttendanceStudentHistory(id int64) string {
	return fmt.Sprintf("presences/etudiant/%d", id)
}

func RouteBulletinsByStudent(id int64) string { return fmt.Sprintf("bulletins/etudiant/%d", id) }
func RouteBulletinPDF(id int64) string        { return fmt.Sprintf("bulletins/%d/pdf", id) }

func RouteStudentAverage(id int64) string    { return fmt.Sprintf("evaluations/student/%d/average", id) }
func RouteSubjectGradeStats(id int64) string { return fmt.Sprintf("evaluations/subject/%d/stats", id) }
func RouteStudentGrades(id int64) string     { return fmt.Sprintf("evaluations/etudiant/%d/toutes", id) }

func RouteTimeSlot(id int64) string        { return fmt.Sprintf("emploidutemps/creneaux/%d", id) }
func RoutePlanning(id int64) string        { return fmt.Sprintf("emploidutemps/plannings/%d", id) }
func RouteClassSchedule(id int64) string   { return fmt.Sprintf("emploidutemps/classe/%d", id) }
func RouteTeacherSchedule(id int64) string { return fmt.Sprintf("emploidutemps/enseignant/%d", id) }
func RoutePlanningCancel(id int64) string  { return fmt.Sprintf("emploidutemps/plannings/%d/annuler", id) }
func RoutePlanningPostpone(id int64) string {
	return fmt.Sprintf("emploidutemps/plannings/%d/reporter", id)
}

func RouteAssignmentSubmissions(id int64) string {
	return fmt.Sprintf("travaux/devoirs/%d/soumissions", id)
}
func RouteSubmissionGrade(id int64) string    { return fmt.Sprintf("travaux/soumissions/%d/noter", id) }
func RouteAssignmentSolution(id int64) string { return fmt.Sprintf("travaux/devoirs/%d/solution", id) }
func RouteAssignmentSubmit(id int64) string   { return fmt.Sprintf("travaux/devoirs/%d/rendre", id) }
func RouteStudentAssignments(id int64) string { return fmt.Sprintf("travaux/etudiant/%d/devoirs", id) }

func RouteResource(id int64) string         { return fmt.Sprintf("ressources/%d", id) }
func RouteSubjectResources(id int64) string { return fmt.Sprintf("ressources/matiere/%d", id) }
func RouteClassResources(id int64) string   { return fmt.Sprintf("ressources/classe/%d", id) }

func RouteInbox(id int64) string             { return fmt.Sprintf("communications/boite-reception/%d", id) }
func RouteMessageRead(id int64) string       { return fmt.Sprintf("communications/messages/%d/lire", id) }
func RouteUserNotifications(id int64) string { return fmt.Sprintf("communications/notifications/%d", id) }
func RouteUnreadCount(id int64) string       { return fmt.Sprintf("communications/non-lus/%d", id) }

func RouteClassLogbook(id int64) string { return fmt.Sprintf("cahier-texte/classe/%d", id) }
func RouteClassLogbookOn(id int64, date string) string {
	return fmt.Sprintf("cahier-texte/classe/%d/date/%s", id, url.PathEscape(date))
}
func RouteLogbookSession(id int64) string { return fmt.Sprintf("cahier-texte/seances/%d", id) }
func RouteTeacherLogbook(id int64) string { return fmt.Sprintf("cahier-texte/seances/enseignant/%d", id) }
func RouteLogbookArchive(id int64) string { return fmt.Sprintf("cahier-texte/%d/archiver", id) }
