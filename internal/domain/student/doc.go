// Package student contains the student domain model of Tutor's Pet.
//
// The package defines:
//
//   - Student, an immutable entity identified by a UUID
//   - EditDescriptor, the partial update applied by the edit command
//   - UniqueStudentList, the container that rejects students with duplicate names
//   - Predicate helpers used by the filtered student list
//
// # Identity
//
// Two notions of sameness are used. IsSame compares names only and decides
// whether a student may be added or renamed. Equal compares every field,
// including the id, and is used to locate the exact entity being edited or
// removed.
//
//	s, err := student.NewStudent(student.NewStudentParams{
//	    Name:  shared.Name("Alex Yeoh"),
//	    Phone: shared.Phone("87438807"),
//	    Email: shared.Email("alexyeoh@example.com"),
//	})
//
// Class membership and attendance refer to students by id, so an edit never
// breaks those references. Deleting a student cascades through the aggregate
// root; see package tutorspet.
package student
