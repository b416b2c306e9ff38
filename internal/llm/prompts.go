package llm

import (
	"fmt"
	"sort"
	"strings"
)

// MockQuestionsPrompt asks for exactly one technical and one behavioral
// question derived from the job description and optional resume text.
func MockQuestionsPrompt(jobDescription, resumeContent string) string {
	return fmt.Sprintf(`Based on the following job description and resume content, generate the following:

1. only one Technical question relevant to the job description and the candidate's experience.
2. only one Behavioral question to understand how the candidate has approached challenges and demonstrated skills in previous roles.

Return the output strictly in the following JSON format:
{"technical_questions": [], "behavioral_questions": []}

Job Description: %s
Resume Content: %s

Please ensure the JSON is correctly structured, without additional text or explanations.`, jobDescription, resumeContent)
}

// ATSScorePrompt asks for a 0-100 applicant-tracking score for one resume.
func ATSScorePrompt(resumeContent, jobDescription string) string {
	var jd string
	if jobDescription != "" {
		jd = "\nJob description to score against:\n" + jobDescription + "\n"
	}
	return fmt.Sprintf(`You are a strict and specialized ATS (Applicant Tracking System) evaluator.
Analyze the provided resume content internally, considering factors such as structure, formatting, keyword optimization, and overall quality.

Resume content:
%s
%s
Instructions:
1. Evaluate the resume internally without providing any analysis or explanation.
2. Respond with the ATS score as a numerical value only in the following exact JSON format:
{"score": <ATS_SCORE>}
3. Replace <ATS_SCORE> with the numerical value of the score (an integer between 0 and 100).
4. Do not include any other text, explanation, or information beyond the JSON.`, resumeContent, jd)
}

// FeedbackPrompt asks for an interview summary and constructive feedback
// over the full question/answer set.
func FeedbackPrompt(userName string, answers map[string]string) string {
	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, q, i+1, answers[q])
	}

	name := userName
	if name == "" {
		name = "the candidate"
	}
	return fmt.Sprintf(`You are an experienced interview coach reviewing a mock interview given by %s.

Interview transcript:
%s
Instructions:
1. Write a short summary of how the interview went overall.
2. Write constructive feedback covering the strengths and the areas to improve, grounded in the answers given.
3. Respond strictly in the following JSON format, without additional text or explanations:
{"summary": "<SUMMARY>", "feedback": "<FEEDBACK>"}`, name, b.String())
}

// CandidateSummaryPrompt asks for a recruiter-facing summary of one resume
// against a job description.
func CandidateSummaryPrompt(resumeContent, jobDescription string) string {
	return fmt.Sprintf(`You are a recruiting assistant. Summarize the following resume for a recruiter deciding whether to proceed with the candidate.

Resume content:
%s

Job description:
%s

Instructions:
1. Cover the candidate's experience, key skills, and fit for the role in a few sentences.
2. Respond strictly in the following JSON format, without additional text or explanations:
{"summary": "<SUMMARY>"}`, resumeContent, jobDescription)
}

// careerContext frames the advisor chat the same way for every message.
const careerContext = `You are a professional career advisor and resume expert.
Your responses should be tailored to help with:
- Resume writing and optimization
- Career guidance
- Professional development
- Job search strategies
- Interview preparation

Always maintain a professional, helpful, and concise tone.`

// ChatPrompt wraps a user message in the career-advisor context.
func ChatPrompt(message string) string {
	return careerContext + "\n\nUser Query: " + message
}
