package backend

// GraphQL documents sent to the backend. Operation names double as metric labels.

const (
	queryLeaderByID = `
query VerifyLeader($leaderId: Int!) {
  leaderById(leaderId: $leaderId) { id firstName lastName }
}`

	queryLeaders = `
query Leaders {
  leaders { id firstName lastName }
}`

	queryGroups = `
query Groups {
  groups {
    id
    name
    memberCount
    members { id firstName lastName }
    leaders { id firstName lastName }
  }
}`

	queryVolunteers = `
query Volunteers {
  volunteers { id firstName lastName }
}`

	queryVolunteerRecords = `
query VolunteerRecords($volunteerId: Int!) {
  volunteerRecords(volunteerId: $volunteerId) { id volunteerId eventId eventName }
}`

	queryEventDetails = `
query MultiDbQuery($eventId: Int!) {
  eventDetails(eventId: $eventId) {
    Type
    Notes
    currentlyCheckedIn
    liveAttendeeCount
    meetingNotes
    notesCount
  }
}`

	queryCheckedIn = `
query CheckedIn($eventId: Int!) {
  checkedInStudents(eventId: $eventId)
  students { id firstName lastName }
}`

	queryMeetingNotes = `
query Notes($eventId: Int!) {
  meetingNotes(eventId: $eventId) { id content createdAt }
}`

	queryStudentAttendance = `
query StudentAttendance($studentId: Int!) {
  studentAttendance(studentId: $studentId) { id eventId theDATE theTime eventName }
}`

	queryStudentLookup = `
query StudentDashboard($studentId: Int!) {
  studentById(studentId: $studentId) { id firstName lastName guardianID }
  studentAttendance(studentId: $studentId) { id eventId eventName theDATE theTime }
  events { id Type Notes eventTypeid }
}`
)

const (
	mutationDeleteEvent = `
mutation DeleteEvent($eventId: Int!) {
  deleteEvent(eventId: $eventId) { success message }
}`

	mutationCheckIn = `
mutation CheckIn($eventId: Int!, $studentId: Int!) {
  checkIn(eventId: $eventId, studentId: $studentId) { status }
}`

	mutationPersistAttendance = `
mutation Persist($eventId: Int!) {
  persistAttendance(eventId: $eventId) { count }
}`

	mutationAddMeetingNote = `
mutation AddNote($eventId: Int!, $content: String!) {
  addMeetingNote(eventId: $eventId, content: $content) { id }
}`

	mutationDeleteStudent = `
mutation DeleteStudent($studentId: Int!) {
  deleteStudent(studentId: $studentId) { success message }
}`

	mutationCreateStudent = `
mutation CreateStudent($firstName: String!, $lastName: String!, $guardianID: Int) {
  createStudent(firstName: $firstName, lastName: $lastName, guardianID: $guardianID) { id firstName lastName guardianID }
}`

	mutationUpdateStudent = `
mutation UpdateStudent($studentId: Int!, $firstName: String, $lastName: String, $guardianID: Int) {
  updateStudent(studentId: $studentId, firstName: $firstName, lastName: $lastName, guardianID: $guardianID) { id firstName lastName guardianID }
}`

	mutationCreateEvent = `
mutation CreateEvent($Type: String!, $Notes: String!, $eventTypeId: Int!) {
  createEvent(Type: $Type, Notes: $Notes, eventTypeId: $eventTypeId) { id Type Notes eventTypeid }
}`

	mutationUpdateEvent = `
mutation UpdateEvent($eventId: Int!, $Type: String, $Notes: String, $eventTypeId: Int) {
  updateEvent(eventId: $eventId, Type: $Type, Notes: $Notes, eventTypeId: $eventTypeId) { id Type Notes eventTypeid }
}`

	mutationCreateGroup = `
mutation CreateGroup($name: String!) {
  createGroup(name: $name) { id name memberCount }
}`

	mutationUpdateGroup = `
mutation UpdateGroup($groupId: Int!, $name: String!) {
  updateGroup(groupId: $groupId, name: $name) { id name memberCount }
}`

	mutationDeleteGroup = `
mutation DeleteGroup($groupId: Int!) {
  deleteGroup(groupId: $groupId) { success message }
}`

	mutationAddStudentToGroup = `
mutation AddStudentToGroup($groupId: Int!, $studentId: Int!) {
  addStudentToGroup(groupId: $groupId, studentId: $studentId) { success message }
}`

	mutationRemoveStudentFromGroup = `
mutation RemoveStudentFromGroup($groupId: Int!, $studentId: Int!) {
  removeStudentFromGroup(groupId: $groupId, studentId: $studentId) { success message }
}`

	mutationAddLeaderToGroup = `
mutation AddLeaderToGroup($groupId: Int!, $leaderId: Int!) {
  addLeaderToGroup(groupId: $groupId, leaderId: $leaderId) { success message }
}`

	mutationRemoveLeaderFromGroup = `
mutation RemoveLeaderFromGroup($groupId: Int!, $leaderId: Int!) {
  removeLeaderFromGroup(groupId: $groupId, leaderId: $leaderId) { success message }
}`

	mutationCreateVolunteer = `
mutation CreateVolunteer($firstName: String!, $lastName: String!) {
  createVolunteer(firstName: $firstName, lastName: $lastName) { id firstName lastName }
}`

	mutationUpdateVolunteer = `
mutation UpdateVolunteer($volunteerId: Int!, $firstName: String, $lastName: String) {
  updateVolunteer(volunteerId: $volunteerId, firstName: $firstName, lastName: $lastName) { id firstName lastName }
}`

	mutationDeleteVolunteer = `
mutation DeleteVolunteer($volunteerId: Int!) {
  deleteVolunteer(volunteerId: $volunteerId) { success message }
}`

	mutationAddVolunteerToEvent = `
mutation AddVolunteerToEvent($volunteerId: Int!, $eventId: Int!) {
  addVolunteerToEvent(volunteerId: $volunteerId, eventId: $eventId) { success message }
}`

	mutationRemoveVolunteerFromEvent = `
mutation RemoveVolunteerFromEvent($volunteerId: Int!, $eventId: Int!) {
  removeVolunteerFromEvent(volunteerId: $volunteerId, eventId: $eventId) { success message }
}`
)
